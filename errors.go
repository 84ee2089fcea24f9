package csvprobe

import (
	"errors"
	"fmt"
	"strings"
)

// Standard error values for the profiling pipeline. Every one of them is
// terminal for the profiling session: none is retried internally, and the
// usual remedy is to restart profiling with a corrected delimiter hint.
var (
	// ErrSampleRead indicates the dataset could not be opened or sampled
	ErrSampleRead = errors.New("csvprobe: cannot read sample from dataset")

	// ErrEncodingUndetected indicates statistical detection produced no usable encoding
	ErrEncodingUndetected = errors.New("csvprobe: could not detect file encoding, please provide a UTF-8 encoded dataset")

	// ErrEncodingUnsupported indicates the detected encoding has no available decoder
	ErrEncodingUnsupported = errors.New("csvprobe: no decoder available for detected encoding")

	// ErrSampleTooSmall indicates the decoded sample is too short to analyze
	ErrSampleTooSmall = errors.New("csvprobe: sample too small to analyze, dataset may be empty or truncated")

	// ErrDelimiterHintMismatch indicates dialect sniffing failed with an explicit delimiter hint
	ErrDelimiterHintMismatch = errors.New("csvprobe: hint delimiter likely wrong, verify the delimiter and retry")

	// ErrDialectUndetected indicates dialect sniffing failed with no hint
	ErrDialectUndetected = errors.New("csvprobe: unable to infer dialect, supply an explicit delimiter")

	// ErrDialectDrift indicates the sniffed dialect does not hold across the sample
	ErrDialectDrift = errors.New("csvprobe: sniffed dialect does not hold across the sample, supply an explicit delimiter")

	// ErrNoRowsInSample indicates size estimation observed zero rows
	ErrNoRowsInSample = errors.New("csvprobe: no rows observed in sample, check the file and dialect")

	// ErrUnsupportedFormat indicates a file type outside the supported set
	ErrUnsupportedFormat = errors.New("csvprobe: unsupported file format")

	// ErrEmptyDataset indicates the dataset contains no bytes
	ErrEmptyDataset = errors.New("csvprobe: empty dataset")

	// ErrMemoryLimit indicates memory limit exceeded while chunking
	ErrMemoryLimit = errors.New("csvprobe: memory limit exceeded")
)

// ErrorContext provides context for where an error occurred
type ErrorContext struct {
	Operation string
	FilePath  string
	Details   string
}

// NewErrorContext creates a new error context
func NewErrorContext(operation, filePath string) *ErrorContext {
	return &ErrorContext{
		Operation: operation,
		FilePath:  filePath,
	}
}

// WithDetails adds details to the error context
func (ec *ErrorContext) WithDetails(details string) *ErrorContext {
	ec.Details = details
	return ec
}

// Error creates a formatted error with context
func (ec *ErrorContext) Error(baseErr error) error {
	var parts []string
	parts = append(parts, fmt.Sprintf("csvprobe: %s failed", ec.Operation))

	if ec.FilePath != "" {
		parts = append(parts, "file: "+ec.FilePath)
	}

	if ec.Details != "" {
		parts = append(parts, "details: "+ec.Details)
	}

	context := strings.Join(parts, ", ")
	if baseErr != nil {
		return fmt.Errorf("%s: %w", context, baseErr)
	}
	return fmt.Errorf("%s", context)
}
