package journal

import (
	"fmt"
	"strings"
)

// validateRunRecord checks a run record before insertion
func validateRunRecord(record RunRecord) error {
	if strings.TrimSpace(record.DatasetPath) == "" {
		return fmt.Errorf("%w: dataset path cannot be empty", ErrInvalidRun)
	}
	if record.Delimiter == 0 {
		return fmt.Errorf("%w: delimiter cannot be empty", ErrInvalidRun)
	}
	if record.RowsPerChunk < 1 {
		return fmt.Errorf("%w: rows per chunk must be at least 1, got %d", ErrInvalidRun, record.RowsPerChunk)
	}
	return nil
}

// validateChunk checks chunk coordinates before insertion
func validateChunk(chunkIndex, rowCount int) error {
	if chunkIndex < 0 {
		return fmt.Errorf("%w: chunk index must not be negative, got %d", ErrInvalidChunk, chunkIndex)
	}
	if rowCount < 0 {
		return fmt.Errorf("%w: row count must not be negative, got %d", ErrInvalidChunk, rowCount)
	}
	return nil
}
