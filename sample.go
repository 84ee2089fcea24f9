package csvprobe

import (
	"errors"
	"fmt"
	"io"
)

// readSample reads at most maxBytes decompressed bytes from the head of the
// dataset at path. The read always starts at offset 0, trading full
// representativeness for speed; a dataset shorter than maxBytes yields the
// whole dataset. Decompression is chosen from the file-name suffix.
func readSample(path string, maxBytes int) ([]byte, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultDialectSampleSize
	}

	reader, cleanup, err := openDatasetReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w (file: %s): %v", ErrSampleRead, path, err)
	}
	defer func() {
		_ = cleanup() // Ignore close error after a completed read
	}()

	buf := make([]byte, maxBytes)
	n, err := io.ReadFull(reader, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("%w (file: %s): %v", ErrSampleRead, path, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w (file: %s)", ErrEmptyDataset, path)
	}

	return buf[:n], nil
}
