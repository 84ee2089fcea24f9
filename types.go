package csvprobe

import (
	"strconv"

	"github.com/docker/go-units"
)

// Sampling and estimation constants. Two distinct sample ceilings serve two
// purposes: the larger one feeds encoding and dialect detection, the smaller
// one feeds the byte-to-row-count size model. Both bound a read that always
// starts at offset 0 of the dataset.
const (
	// DefaultDialectSampleSize is the sample ceiling for encoding and dialect detection.
	DefaultDialectSampleSize = 2 * units.MiB
	// DefaultEstimateSampleSize is the sample ceiling for chunk-size estimation.
	DefaultEstimateSampleSize = 512 * units.KiB
	// DefaultTargetChunkBytes is the payload-size goal per outbound chunk. It is
	// configuration chosen for the transport's throughput/latency sweet spot,
	// never derived from the dataset.
	DefaultTargetChunkBytes = 1536 * units.KiB
	// DefaultSmallDatasetRows is the fixed recommendation for datasets whose
	// sample is too small to warrant size analysis.
	DefaultSmallDatasetRows = 500
	// DefaultTailTolerance is the number of trailing sample lines within which
	// a parse failure counts as sample-edge noise rather than dialect drift.
	DefaultTailTolerance = 2
	// MinChunkSize is the minimum allowed rows per chunk.
	MinChunkSize = 1
)

// smallSampleRatio is the fraction of DefaultEstimateSampleSize below which a
// dataset is judged too small to analyze and DefaultSmallDatasetRows applies.
const smallSampleRatio = 0.75

// minDecodedSampleChars is the minimum decoded sample length accepted by the
// dialect sniffer.
const minDecodedSampleChars = 10

// ChunkSize represents a recommended rows-per-chunk count with validation
type ChunkSize int

// NewChunkSize creates a new ChunkSize with validation
func NewChunkSize(size int) ChunkSize {
	if size < MinChunkSize {
		return ChunkSize(DefaultSmallDatasetRows)
	}
	return ChunkSize(size)
}

// Int returns the int value of ChunkSize
func (cs ChunkSize) Int() int {
	return int(cs)
}

// String returns the string representation of ChunkSize
func (cs ChunkSize) String() string {
	return strconv.Itoa(int(cs))
}

// IsValid checks if the chunk size is valid
func (cs ChunkSize) IsValid() bool {
	return int(cs) >= MinChunkSize
}

// ColumnType represents the inferred type of a profiled column
type ColumnType int

const (
	// ColumnTypeText represents free-form text values
	ColumnTypeText ColumnType = iota
	// ColumnTypeInteger represents integer values
	ColumnTypeInteger
	// ColumnTypeReal represents floating point values
	ColumnTypeReal
	// ColumnTypeDatetime represents datetime values
	ColumnTypeDatetime
)

// String returns the display name of the column type
func (ct ColumnType) String() string {
	switch ct {
	case ColumnTypeInteger:
		return "INTEGER"
	case ColumnTypeReal:
		return "REAL"
	case ColumnTypeDatetime:
		return "DATETIME"
	default:
		return "TEXT"
	}
}
