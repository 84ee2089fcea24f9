package csvprobe

import (
	"io"

	"github.com/nao1215/csvprobe/domain/model"
)

// Chunk is one batch of rows sized for the downstream transport. It
// is ordered, finite, and never empty; only the final chunk of a
// stream may be shorter than the configured target. The index is the
// chunk's position in the stream, usable as a scoring checkpoint key.
type Chunk struct {
	index   int
	records []model.Record
}

// Index returns the chunk's zero-based position in the stream.
func (c *Chunk) Index() int {
	return c.index
}

// Records returns the chunk's rows in arrival order.
func (c *Chunk) Records() []model.Record {
	return c.records
}

// Len returns the number of rows in the chunk.
func (c *Chunk) Len() int {
	return len(c.records)
}

// ChunkIterator groups an ordered row source into fixed-size chunks.
// It is lazy, single-pass, and non-restartable: rows are pulled from
// the source only as Next is called, and a drained iterator stays
// drained. An iterator may be handed to a different goroutine than
// the one that created it, provided exactly one consumer drains it.
type ChunkIterator struct {
	source      RowSource
	size        int
	memoryLimit *MemoryLimit
	index       int
	exhausted   bool
	pressured   bool
}

// ChunkIteratorOption configures a ChunkIterator.
type ChunkIteratorOption func(*ChunkIterator)

// WithMemoryLimit makes the iterator consult the given limit between
// chunks and shrink the accumulation target under memory pressure.
// The recommended chunk size and the never-empty invariant are
// unchanged; only the actual accumulation target degrades. Usage that
// stays over the hard limit across consecutive chunks, where
// shrinking evidently did not help, aborts iteration with an error
// wrapping ErrMemoryLimit.
func WithMemoryLimit(limit *MemoryLimit) ChunkIteratorOption {
	return func(it *ChunkIterator) {
		it.memoryLimit = limit
	}
}

// NewChunkIterator creates a chunk iterator over the given row source
// with the given target rows per chunk.
func NewChunkIterator(source RowSource, size ChunkSize, opts ...ChunkIteratorOption) *ChunkIterator {
	it := &ChunkIterator{
		source: source,
		size:   NewChunkSize(size.Int()).Int(),
	}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

// Next returns the next chunk, or io.EOF when the source is drained.
// The final chunk may be shorter than the target but is never empty;
// an empty source yields io.EOF immediately.
func (it *ChunkIterator) Next() (*Chunk, error) {
	if it.exhausted {
		return nil, io.EOF
	}

	target := it.size
	if it.memoryLimit != nil {
		if reduce, reduced := it.memoryLimit.ShouldReduceChunkSize(target); reduce {
			exceeded := it.memoryLimit.CheckMemoryUsage() == MemoryStatusExceeded
			if exceeded && it.pressured {
				return nil, it.memoryLimit.CreateMemoryError("chunk iteration")
			}
			it.pressured = exceeded
			target = max(reduced, MinChunkSize)
		} else {
			it.pressured = false
		}
	}

	records := make([]model.Record, 0, target)
	for len(records) < target {
		record, err := it.source.Next()
		if err != nil {
			if err == io.EOF {
				it.exhausted = true
				break
			}
			return nil, err
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, io.EOF
	}

	chunk := &Chunk{index: it.index, records: records}
	it.index++
	return chunk, nil
}
