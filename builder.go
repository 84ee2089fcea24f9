package csvprobe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// ProfileBuilder configures dataset inputs and profiling parameters
// before running the pipeline. Use NewBuilder to create a new instance,
// then chain method calls to configure it.
//
// The typical usage pattern is:
//
//	profiles, err := csvprobe.NewBuilder().
//		AddPath("data/users.csv").
//		SetDelimiterHint(';').
//		Build(ctx)
//	if err != nil {
//		return err
//	}
type ProfileBuilder struct {
	paths          []string
	filesystems    []fs.FS
	collectedPaths []string
	// tempFiles tracks temporary files created for cleanup
	tempFiles     []string
	hint          rune
	dialect       *Dialect
	targetBytes   int
	tailTolerance int
	reporter      Reporter
	processor     *fileProcessor
}

// NewBuilder creates a new profile builder for configuring dataset inputs.
// The returned builder can be used to add file paths and embedded
// filesystems before profiling.
//
// Example:
//
//	profiles, err := csvprobe.NewBuilder().
//		AddPath("data/orders.tsv.gz").
//		AddFS(embeddedFS).
//		Build(ctx)
func NewBuilder() *ProfileBuilder {
	return &ProfileBuilder{
		paths:         make([]string, 0),
		filesystems:   make([]fs.FS, 0),
		tempFiles:     make([]string, 0),
		targetBytes:   DefaultTargetChunkBytes,
		tailTolerance: DefaultTailTolerance,
		reporter:      NewNopReporter(),
		processor:     newFileProcessor(),
	}
}

// AddPath adds a regular file or directory path to the builder.
// The path can be:
// - A single file with supported extensions (.csv, .tsv, and their compressed variants)
// - A directory path (all supported files will be profiled recursively)
//
// Returns the builder for method chaining.
func (b *ProfileBuilder) AddPath(path string) *ProfileBuilder {
	b.paths = append(b.paths, path)
	return b
}

// AddPaths adds multiple file or directory paths to the builder.
// Each path follows the same rules as AddPath.
//
// Returns the builder for method chaining.
func (b *ProfileBuilder) AddPaths(paths ...string) *ProfileBuilder {
	b.paths = append(b.paths, paths...)
	return b
}

// AddFS adds all supported files from an fs.FS filesystem to the builder.
// This method is particularly useful for embedded filesystems using go:embed.
// Matching files are copied to temporary files during Build() because the
// sampler needs a real path. Use Cleanup() to remove them when done.
//
// Returns the builder for method chaining.
func (b *ProfileBuilder) AddFS(filesystem fs.FS) *ProfileBuilder {
	b.filesystems = append(b.filesystems, filesystem)
	return b
}

// SetDelimiterHint fixes the field delimiter instead of letting the
// sniffer choose one. Profiling fails with ErrDelimiterHintMismatch
// when the hint does not hold across the sample.
//
// Returns the builder for method chaining.
func (b *ProfileBuilder) SetDelimiterHint(delimiter rune) *ProfileBuilder {
	b.hint = delimiter
	return b
}

// SetDialect skips sniffing entirely and profiles with the given
// dialect. Row scanning still verifies the dialect holds across the
// sample.
//
// Returns the builder for method chaining.
func (b *ProfileBuilder) SetDialect(dialect Dialect) *ProfileBuilder {
	b.dialect = &dialect
	return b
}

// SetTargetChunkBytes overrides the default payload-size goal per
// outbound chunk.
//
// Returns the builder for method chaining.
func (b *ProfileBuilder) SetTargetChunkBytes(targetBytes int) *ProfileBuilder {
	b.targetBytes = targetBytes
	return b
}

// SetTailTolerance overrides how many trailing sample lines may fail to
// parse before the failure counts as dialect drift.
//
// Returns the builder for method chaining.
func (b *ProfileBuilder) SetTailTolerance(tolerance int) *ProfileBuilder {
	b.tailTolerance = tolerance
	return b
}

// SetReporter installs a progress reporter. Pass the result of
// NewSlogReporter to see per-phase diagnostics.
//
// Returns the builder for method chaining.
func (b *ProfileBuilder) SetReporter(reporter Reporter) *ProfileBuilder {
	if reporter != nil {
		b.reporter = reporter
	}
	return b
}

// Build validates all configured inputs and collects the files to
// profile. It must be called before Profile(). It performs the
// following operations:
//
// 1. Validates that at least one input source is configured
// 2. Checks existence and format of all file paths
// 3. Processes embedded filesystems by copying files to temporary locations
// 4. Drops compressed duplicates of datasets that are also present plain
//
// Returns the same builder instance for method chaining, or an error if
// validation fails.
func (b *ProfileBuilder) Build(ctx context.Context) (*ProfileBuilder, error) {
	if len(b.paths) == 0 && len(b.filesystems) == 0 {
		return nil, errors.New("at least one path must be provided")
	}
	v := newValidator()
	if err := v.validateDelimiterHint(b.hint); err != nil {
		return nil, err
	}
	if err := v.validateTargetChunkBytes(b.targetBytes); err != nil {
		return nil, err
	}
	if err := v.validateTailTolerance(b.tailTolerance); err != nil {
		return nil, err
	}

	collected, err := b.processor.collectFilesFromPaths(b.paths)
	if err != nil {
		return nil, err
	}
	b.collectedPaths = collected

	for _, filesystem := range b.filesystems {
		if filesystem == nil {
			return nil, errors.New("FS cannot be nil")
		}
		paths, err := b.processFSInput(ctx, filesystem)
		if err != nil {
			return nil, fmt.Errorf("failed to process FS input: %w", err)
		}
		b.collectedPaths = append(b.collectedPaths, paths...)
	}

	if err := v.validateFinalState(b.collectedPaths, b.paths); err != nil {
		return nil, err
	}
	return b, nil
}

// Profile runs the profiling pipeline over every collected dataset.
// This method can only be called after Build() has been successfully
// executed. Datasets are profiled concurrently; results keep the
// collection order. The first failing dataset aborts the rest.
func (b *ProfileBuilder) Profile(ctx context.Context) ([]*DatasetProfile, error) {
	if err := newValidator().validateInputsAvailable(b.collectedPaths); err != nil {
		return nil, err
	}

	profiles := make([]*DatasetProfile, len(b.collectedPaths))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range b.collectedPaths {
		g.Go(func() error {
			session := newProfileSession(path)
			session.hint = b.hint
			session.dialectOverride = b.dialect
			session.targetBytes = b.targetBytes
			session.tailTolerance = b.tailTolerance
			session.reporter = b.reporter
			profile, err := session.run(gctx)
			if err != nil {
				return err
			}
			profiles[i] = profile
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return profiles, nil
}

// processFSInput copies all supported files from an fs.FS to temp files
func (b *ProfileBuilder) processFSInput(ctx context.Context, filesystem fs.FS) ([]string, error) {
	allMatches := make([]string, 0)
	err := fs.WalkDir(filesystem, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if d.IsDir() || !detectFileType(path).isDelimitedText() {
			return nil
		}
		allMatches = append(allMatches, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk filesystem: %w", err)
	}

	if len(allMatches) == 0 {
		return nil, errors.New("no supported files found in filesystem")
	}

	paths := make([]string, 0, len(allMatches))
	for _, match := range allMatches {
		tempPath, err := b.copyFSToTemp(filesystem, match)
		if err != nil {
			return nil, fmt.Errorf("failed to copy file %s: %w", match, err)
		}
		paths = append(paths, tempPath)
	}
	return paths, nil
}

// copyFSToTemp copies a file from fs.FS to a temporary file. The temp
// name keeps the original base name so file type detection still works.
func (b *ProfileBuilder) copyFSToTemp(filesystem fs.FS, path string) (string, error) {
	src, err := filesystem.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open FS file: %w", err)
	}
	defer src.Close()

	tempDir, err := os.MkdirTemp("", "csvprobe-fs-")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	tempPath := filepath.Join(tempDir, filepath.Base(path))

	dst, err := os.Create(tempPath) //nolint:gosec // path is built from MkdirTemp
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		removeErr := os.RemoveAll(tempDir)
		if removeErr != nil {
			return "", errors.Join(
				fmt.Errorf("failed to copy content: %w", err),
				fmt.Errorf("failed to cleanup temp file: %w", removeErr),
			)
		}
		return "", fmt.Errorf("failed to copy content: %w", err)
	}

	b.tempFiles = append(b.tempFiles, tempDir)
	return tempPath, nil
}

// cleanup removes temporary files and returns any errors
func (b *ProfileBuilder) cleanup() error {
	var errs []error
	for _, path := range b.tempFiles {
		if err := os.RemoveAll(path); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove temp file %s: %w", path, err))
		}
	}
	b.tempFiles = nil
	return errors.Join(errs...)
}

// Cleanup removes all temporary files created during filesystem
// processing. It's safe to call multiple times.
//
// Example usage:
//
//	builder, err := csvprobe.NewBuilder().AddFS(embeddedFS).Build(ctx)
//	if err != nil {
//		return err
//	}
//	defer builder.Cleanup()
func (b *ProfileBuilder) Cleanup() error {
	return b.cleanup()
}
