package journal

import "errors"

var (
	// ErrClosed indicates an operation on a closed journal
	ErrClosed = errors.New("csvprobe journal: journal is closed")

	// ErrRunNotFound indicates no run exists for the requested dataset
	ErrRunNotFound = errors.New("csvprobe journal: run not found")

	// ErrInvalidRun indicates a run record that cannot be persisted
	ErrInvalidRun = errors.New("csvprobe journal: invalid run record")

	// ErrInvalidChunk indicates chunk coordinates that cannot be persisted
	ErrInvalidChunk = errors.New("csvprobe journal: invalid chunk")
)
