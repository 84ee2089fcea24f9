package csvprobe

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/transform"

	"github.com/nao1215/csvprobe/domain/model"
)

// RowSource is an ordered, single-pass stream of rows. Next returns
// io.EOF when the source is drained. Implementations yield the header
// row first when the underlying format carries one, so the row
// sequence matches the raw file order.
type RowSource interface {
	// Next returns the next row in order, or io.EOF at the end
	Next() (model.Record, error)
	// Close releases the underlying resources
	Close() error
}

// OpenRowSource opens a streaming row source over the full dataset
// described by the profile, routing by file type. Delimited text is
// decoded to UTF-8 with the profiled encoding and parsed with the
// profiled dialect; Parquet and XLSX carry their own structure and
// ignore both.
func OpenRowSource(path string, profile *DatasetProfile) (RowSource, error) {
	fileType := detectFileType(path)
	switch fileType.baseType() {
	case FileTypeCSV, FileTypeTSV:
		if profile == nil {
			return nil, errors.New("csvprobe: delimited text requires a profile, run Profile first")
		}
		return newDelimitedRowSource(path, profile.Encoding(), profile.Dialect())
	case FileTypeParquet:
		return newParquetRowSource(path)
	case FileTypeXLSX:
		return newXLSXRowSource(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// delimitedRowSource streams rows from a possibly compressed delimited
// text file, decoding to UTF-8 and parsing with the session dialect.
type delimitedRowSource struct {
	reader  *csv.Reader
	cleanup func() error
}

// newDelimitedRowSource opens the file through the compression layer,
// stacks the decoding transformer for non-UTF-8 datasets, and
// configures the CSV reader from the dialect.
func newDelimitedRowSource(path string, encoding model.EncodingGuess, dialect model.Dialect) (*delimitedRowSource, error) {
	raw, cleanup, err := openDatasetReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w (file: %s): %v", ErrSampleRead, path, err)
	}

	reader := raw
	if !encoding.IsZero() && !encoding.IsUTF8() {
		decoder, err := decoderFor(encoding.Name())
		if err != nil {
			_ = cleanup()
			return nil, err
		}
		reader = transform.NewReader(raw, decoder)
	}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = dialect.Delimiter()
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = dialect.Quote() != model.DefaultQuote
	csvReader.ReuseRecord = false

	return &delimitedRowSource{
		reader:  csvReader,
		cleanup: cleanup,
	}, nil
}

// Next implements RowSource
func (s *delimitedRowSource) Next() (model.Record, error) {
	record, err := s.reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: %v", ErrDialectDrift, err)
	}
	return model.NewRecord(record), nil
}

// Close implements RowSource
func (s *delimitedRowSource) Close() error {
	return s.cleanup()
}

// SliceRowSource serves rows from memory. It backs tests and callers
// that already hold their rows.
type SliceRowSource struct {
	rows []model.Record
	pos  int
}

// NewSliceRowSource creates a RowSource over the given rows. The
// slice is not copied; the caller must not mutate it while streaming.
func NewSliceRowSource(rows []model.Record) *SliceRowSource {
	return &SliceRowSource{rows: rows}
}

// Next implements RowSource
func (s *SliceRowSource) Next() (model.Record, error) {
	if s.pos >= len(s.rows) {
		return nil, io.EOF
	}
	row := s.rows[s.pos]
	s.pos++
	return row, nil
}

// Close implements RowSource
func (s *SliceRowSource) Close() error {
	return nil
}
