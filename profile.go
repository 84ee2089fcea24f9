package csvprobe

import (
	"fmt"

	"github.com/docker/go-units"

	"github.com/nao1215/csvprobe/domain/model"
)

// DatasetProfile is the aggregate result of one profiling session.
// It carries everything the downstream transport needs to stream the
// dataset in batches: the detected encoding, the inferred dialect, and
// the recommended rows-per-chunk. The value is immutable once built.
type DatasetProfile struct {
	// path is the dataset path that was profiled.
	path string
	// fileType is the detected file type including compression variant.
	fileType FileType
	// compression is the compression applied to the dataset.
	compression CompressionType
	// encoding is the statistically detected encoding guess.
	encoding model.EncodingGuess
	// dialect is the sniffed dialect, reused for every later parse.
	dialect model.Dialect
	// header is the first row of the sample.
	header model.Header
	// sampleRowCount is the corrected row count of the truncated sample,
	// header included.
	sampleRowCount int
	// sampleByteSize is the canonical UTF-8 byte size of the truncated sample.
	sampleByteSize int
	// chunkSize is the recommended rows per outbound chunk.
	chunkSize ChunkSize
	// columns holds per-column type summaries inferred from the sample.
	columns []ColumnProfile
}

// Path returns the profiled dataset path.
func (p *DatasetProfile) Path() string {
	return p.path
}

// FileType returns the detected file type.
func (p *DatasetProfile) FileType() FileType {
	return p.fileType
}

// Compression returns the compression applied to the dataset.
func (p *DatasetProfile) Compression() CompressionType {
	return p.compression
}

// IsCompressed reports whether the dataset is compressed.
func (p *DatasetProfile) IsCompressed() bool {
	return p.compression != CompressionNone
}

// Encoding returns the detected encoding guess.
func (p *DatasetProfile) Encoding() model.EncodingGuess {
	return p.encoding
}

// Dialect returns the sniffed dialect.
func (p *DatasetProfile) Dialect() model.Dialect {
	return p.dialect
}

// Header returns the first row of the sample.
func (p *DatasetProfile) Header() model.Header {
	return p.header
}

// SampleRowCount returns the corrected row count observed in the
// truncated sample, header included.
func (p *DatasetProfile) SampleRowCount() int {
	return p.sampleRowCount
}

// SampleByteSize returns the canonical UTF-8 byte size of the
// truncated sample.
func (p *DatasetProfile) SampleByteSize() int {
	return p.sampleByteSize
}

// RowsPerChunk returns the recommended rows per outbound chunk.
func (p *DatasetProfile) RowsPerChunk() ChunkSize {
	return p.chunkSize
}

// Columns returns per-column type summaries inferred from the sample.
func (p *DatasetProfile) Columns() []ColumnProfile {
	return p.columns
}

// Name returns a display name for the dataset derived from its path.
func (p *DatasetProfile) Name() string {
	return datasetNameFromPath(p.path)
}

// String returns a one-line summary for operator display.
func (p *DatasetProfile) String() string {
	return fmt.Sprintf("%s: encoding=%s %s rows/chunk=%d sample=%s/%d rows",
		p.Name(),
		p.encoding.Name(),
		p.dialect.String(),
		p.chunkSize.Int(),
		units.HumanSize(float64(p.sampleByteSize)),
		p.sampleRowCount,
	)
}
