package csvprobe

import (
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// compressionKinds lists every compression the pipeline recognizes by
// file-name suffix.
var compressionKinds = []CompressionType{
	CompressionGZ,
	CompressionBZ2,
	CompressionXZ,
	CompressionZSTD,
}

// detectCompression returns the compression named by the path suffix,
// or CompressionNone. The comparison is case-insensitive.
func detectCompression(path string) CompressionType {
	lower := strings.ToLower(path)
	for _, kind := range compressionKinds {
		if strings.HasSuffix(lower, kind.Extension()) {
			return kind
		}
	}
	return CompressionNone
}

// stripCompressionExt removes a trailing compression suffix, leaving
// the format suffix in place: "a.csv.gz" becomes "a.csv".
func stripCompressionExt(path string) string {
	kind := detectCompression(path)
	if kind == CompressionNone {
		return path
	}
	return path[:len(path)-len(kind.Extension())]
}

// decompressReader stacks the decoder for kind on top of r. The
// returned func releases decoder state only; closing r stays with the
// caller.
func decompressReader(r io.Reader, kind CompressionType) (io.Reader, func() error, error) {
	switch kind {
	case CompressionGZ:
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("csvprobe: open gzip stream: %w", err)
		}
		return gz, gz.Close, nil
	case CompressionBZ2:
		return bzip2.NewReader(r), func() error { return nil }, nil
	case CompressionXZ:
		xzReader, err := xz.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("csvprobe: open xz stream: %w", err)
		}
		return xzReader, func() error { return nil }, nil
	case CompressionZSTD:
		decoder, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("csvprobe: open zstd stream: %w", err)
		}
		return decoder, func() error {
			decoder.Close()
			return nil
		}, nil
	default:
		return r, func() error { return nil }, nil
	}
}

// compressWriter stacks the encoder for kind on top of w. bzip2 has no
// encoder in the stack and is rejected.
func compressWriter(w io.Writer, kind CompressionType) (io.Writer, func() error, error) {
	switch kind {
	case CompressionGZ:
		gz := gzip.NewWriter(w)
		return gz, gz.Close, nil
	case CompressionBZ2:
		return nil, nil, errors.New("csvprobe: bzip2 output is not supported")
	case CompressionXZ:
		xzWriter, err := xz.NewWriter(w)
		if err != nil {
			return nil, nil, fmt.Errorf("csvprobe: open xz writer: %w", err)
		}
		return xzWriter, xzWriter.Close, nil
	case CompressionZSTD:
		zstdWriter, err := zstd.NewWriter(w)
		if err != nil {
			return nil, nil, fmt.Errorf("csvprobe: open zstd writer: %w", err)
		}
		return zstdWriter, zstdWriter.Close, nil
	default:
		return w, func() error { return nil }, nil
	}
}

// openDatasetReader opens the file at path and decompresses it
// according to its suffix. The returned cleanup closes both layers.
func openDatasetReader(path string) (io.Reader, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	reader, release, err := decompressReader(f, detectCompression(path))
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}

	cleanup := func() error {
		releaseErr := release()
		if closeErr := f.Close(); closeErr != nil && releaseErr == nil {
			return closeErr
		}
		return releaseErr
	}
	return reader, cleanup, nil
}

// createDatasetWriter creates the file at path and compresses writes
// according to its suffix. The returned cleanup flushes the encoder,
// syncs, and closes the file.
func createDatasetWriter(path string) (io.Writer, func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}

	writer, finish, err := compressWriter(f, detectCompression(path))
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}

	cleanup := func() error {
		cleanupErr := finish()
		if syncErr := f.Sync(); syncErr != nil && cleanupErr == nil {
			cleanupErr = syncErr
		}
		if closeErr := f.Close(); closeErr != nil && cleanupErr == nil {
			cleanupErr = closeErr
		}
		return cleanupErr
	}
	return writer, cleanup, nil
}
