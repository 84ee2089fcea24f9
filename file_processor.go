package csvprobe

import (
	"fmt"
	"os"
	"path/filepath"
)

// fileProcessor collects and deduplicates dataset files for ProfileBuilder
type fileProcessor struct {
	validator *validator
}

// newFileProcessor creates a new file processor instance
func newFileProcessor() *fileProcessor {
	return &fileProcessor{
		validator: newValidator(),
	}
}

// collectFilesFromPaths validates and collects all files from the given paths
func (fp *fileProcessor) collectFilesFromPaths(paths []string) ([]string, error) {
	var collectedPaths []string
	processedFiles := make(map[string]bool)

	for _, path := range paths {
		if err := fp.validator.validatePath(path); err != nil {
			return nil, err
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat path %s: %w", path, err)
		}

		if info.IsDir() {
			dirFiles, err := fp.collectFilesFromDirectory(path, processedFiles)
			if err != nil {
				return nil, err
			}
			collectedPaths = append(collectedPaths, dirFiles...)
		} else {
			if err := fp.addSingleFile(path, processedFiles, &collectedPaths); err != nil {
				return nil, err
			}
		}
	}

	return deduplicateCompressedFiles(collectedPaths), nil
}

// collectFilesFromDirectory recursively collects all supported files from a directory
func (fp *fileProcessor) collectFilesFromDirectory(dirPath string, processedFiles map[string]bool) ([]string, error) {
	var collectedPaths []string

	err := filepath.WalkDir(dirPath, func(filePath string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Directory scans pick up only profilable files; Parquet and
		// XLSX serve the streaming phase and must be added explicitly.
		if d.IsDir() || !detectFileType(filePath).isDelimitedText() {
			return nil
		}

		absPath, err := filepath.Abs(filePath)
		if err != nil {
			return fmt.Errorf("failed to get absolute path for %s: %w", filePath, err)
		}

		if !processedFiles[absPath] {
			processedFiles[absPath] = true
			collectedPaths = append(collectedPaths, filePath)
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", dirPath, err)
	}

	return collectedPaths, nil
}

// addSingleFile validates and adds a single file to the collected paths
func (fp *fileProcessor) addSingleFile(filePath string, processedFiles map[string]bool, collectedPaths *[]string) error {
	if !isSupportedFile(filePath) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filePath)
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for %s: %w", filePath, err)
	}

	if !processedFiles[absPath] {
		processedFiles[absPath] = true
		*collectedPaths = append(*collectedPaths, filePath)
	}

	return nil
}

// deduplicateCompressedFiles keeps only one variant when a dataset is
// present both plain and compressed. The plain file wins because it
// samples fastest; among compressed variants the first collected wins.
func deduplicateCompressedFiles(paths []string) []string {
	chosen := make(map[string]string, len(paths))
	order := make([]string, 0, len(paths))
	for _, path := range paths {
		base := stripCompressionExt(path)
		existing, ok := chosen[base]
		if !ok {
			chosen[base] = path
			order = append(order, base)
			continue
		}
		if isCompressedFile(existing) && !isCompressedFile(path) {
			chosen[base] = path
		}
	}

	result := make([]string, 0, len(order))
	for _, base := range order {
		result = append(result, chosen[base])
	}
	return result
}

// isCompressedFile reports whether the path carries a compression extension
func isCompressedFile(path string) bool {
	return detectCompression(path) != CompressionNone
}
