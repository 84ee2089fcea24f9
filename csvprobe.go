package csvprobe

import (
	"context"
	"fmt"
	"strings"

	"github.com/nao1215/csvprobe/domain/model"
)

// Re-export domain model types for API convenience.
type (
	// Dialect describes how a delimited dataset is parsed.
	Dialect = model.Dialect
	// EncodingGuess is a detected text encoding with its confidence.
	EncodingGuess = model.EncodingGuess
	// Header is the column name row of a dataset.
	Header = model.Header
	// Record is a single data row.
	Record = model.Record
	// CompressionType identifies the outer compression of a dataset file.
	CompressionType = model.CompressionType
)

// Re-export compression constants.
const (
	// CompressionNone represents no compression
	CompressionNone = model.CompressionNone
	// CompressionGZ represents gzip compression
	CompressionGZ = model.CompressionGZ
	// CompressionBZ2 represents bzip2 compression
	CompressionBZ2 = model.CompressionBZ2
	// CompressionXZ represents xz compression
	CompressionXZ = model.CompressionXZ
	// CompressionZSTD represents zstd compression
	CompressionZSTD = model.CompressionZSTD
)

// Profile profiles the dataset at path with default settings.
//
// The path may point to a CSV or TSV file, optionally compressed with
// gzip, bzip2, xz, or zstd. Profiling reads at most a bounded prefix of
// the file, so it stays cheap even for very large datasets.
//
// Example usage:
//
//	profile, err := csvprobe.Profile("data/users.csv.gz")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%s: %d rows per chunk\n", profile.Name(), profile.RowsPerChunk())
//
// Use NewBuilder for delimiter hints, custom chunk targets, or
// profiling several datasets at once.
func Profile(path string) (*DatasetProfile, error) {
	return ProfileContext(context.Background(), path)
}

// ProfileContext profiles the dataset at path, honoring ctx between
// pipeline phases. A cancelled context aborts profiling at the next
// phase boundary.
func ProfileContext(ctx context.Context, path string) (*DatasetProfile, error) {
	session := newProfileSession(path)
	return session.run(ctx)
}

// sessionState tracks pipeline progress through a profiling session.
// Phases always advance in order; a failed phase leaves the session in
// its last completed state.
type sessionState int

const (
	stateInit sessionState = iota
	stateSampled
	stateEncodingDetected
	stateDialectSniffed
	stateRowsScanned
	stateEstimated
)

// String returns the display name of the session state
func (s sessionState) String() string {
	switch s {
	case stateInit:
		return "INIT"
	case stateSampled:
		return "SAMPLED"
	case stateEncodingDetected:
		return "ENCODING_DETECTED"
	case stateDialectSniffed:
		return "DIALECT_SNIFFED"
	case stateRowsScanned:
		return "ROWS_SCANNED"
	case stateEstimated:
		return "ESTIMATED"
	default:
		return "UNKNOWN"
	}
}

// profileSession runs the profiling pipeline for one dataset. It is
// single-use: run may be called once.
type profileSession struct {
	path            string
	hint            rune
	targetBytes     int
	tailTolerance   int
	reporter        Reporter
	state           sessionState
	dialectOverride *model.Dialect
}

func newProfileSession(path string) *profileSession {
	return &profileSession{
		path:          path,
		targetBytes:   DefaultTargetChunkBytes,
		tailTolerance: DefaultTailTolerance,
		reporter:      NewNopReporter(),
		state:         stateInit,
	}
}

// run executes the pipeline: sample, detect encoding, sniff dialect,
// scan row boundaries, estimate chunk size. The context is checked
// between phases so cancellation never interrupts a phase midway.
func (s *profileSession) run(ctx context.Context) (*DatasetProfile, error) {
	if err := newValidator().validatePath(s.path); err != nil {
		return nil, err
	}

	dataset := newFile(s.path)
	fileType := dataset.getFileType()
	if !fileType.isDelimitedText() {
		return nil, NewErrorContext("profiling", s.path).Error(ErrUnsupportedFormat)
	}
	compression := dataset.compressionType()

	// TSV gets a tab hint unless the caller supplied one.
	hint := s.hint
	if hint == 0 && fileType.baseType() == FileTypeTSV {
		hint = '\t'
	}

	sample, err := s.readSamplePhase(ctx)
	if err != nil {
		return nil, err
	}
	encoding, text, err := s.detectEncodingPhase(ctx, sample)
	if err != nil {
		return nil, err
	}
	dialect, err := s.sniffDialectPhase(ctx, text, hint)
	if err != nil {
		return nil, err
	}
	rows, truncated, err := s.scanRowsPhase(ctx, text, dialect)
	if err != nil {
		return nil, err
	}
	chunkSize, err := s.estimatePhase(ctx, truncated, len(rows), dialect)
	if err != nil {
		return nil, err
	}

	profile := &DatasetProfile{
		path:           s.path,
		fileType:       fileType,
		compression:    compression,
		encoding:       encoding,
		dialect:        dialect,
		sampleRowCount: len(rows),
		sampleByteSize: len(truncated),
		chunkSize:      chunkSize,
	}
	if len(rows) > 0 {
		profile.header = model.NewHeader(rows[0])
		profile.columns = inferColumns(profile.header, rows[1:])
	}

	s.reporter.Info("profiling complete",
		"path", s.path,
		"encoding", encoding.Name(),
		"dialect", dialect.String(),
		"sample_rows", len(rows),
		"rows_per_chunk", chunkSize.Int(),
	)
	return profile, nil
}

func (s *profileSession) advance(ctx context.Context, next sessionState) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("csvprobe: profiling cancelled in state %s: %w", s.state, err)
	}
	s.state = next
	return nil
}

func (s *profileSession) readSamplePhase(ctx context.Context) ([]byte, error) {
	if err := s.advance(ctx, stateSampled); err != nil {
		return nil, err
	}

	sample, err := readSample(s.path, DefaultDialectSampleSize)
	if err != nil {
		return nil, err
	}
	s.reporter.Debug("sample read", "path", s.path, "bytes", len(sample))
	return sample, nil
}

func (s *profileSession) detectEncodingPhase(ctx context.Context, sample []byte) (model.EncodingGuess, string, error) {
	if err := s.advance(ctx, stateEncodingDetected); err != nil {
		return model.EncodingGuess{}, "", err
	}

	encoding, err := detectEncoding(sample)
	if err != nil {
		return model.EncodingGuess{}, "", NewErrorContext("encoding detection", s.path).Error(err)
	}
	text, err := decodeSample(sample, encoding)
	if err != nil {
		return model.EncodingGuess{}, "", NewErrorContext("sample decoding", s.path).
			WithDetails("encoding "+encoding.Name()).Error(err)
	}
	if len(text) < minDecodedSampleChars {
		return model.EncodingGuess{}, "", NewErrorContext("sample decoding", s.path).Error(ErrSampleTooSmall)
	}
	s.reporter.Debug("encoding detected",
		"encoding", encoding.Name(), "confidence", encoding.Confidence())
	return encoding, text, nil
}

func (s *profileSession) sniffDialectPhase(ctx context.Context, text string, hint rune) (model.Dialect, error) {
	if err := s.advance(ctx, stateDialectSniffed); err != nil {
		return model.Dialect{}, err
	}

	if s.dialectOverride != nil {
		return *s.dialectOverride, nil
	}
	dialect, err := sniffDialect(text, hint)
	if err != nil {
		return model.Dialect{}, NewErrorContext("dialect sniffing", s.path).Error(err)
	}
	s.reporter.Debug("dialect sniffed", "dialect", dialect.String())
	return dialect, nil
}

func (s *profileSession) scanRowsPhase(ctx context.Context, text string, dialect model.Dialect) ([]model.Record, string, error) {
	if err := s.advance(ctx, stateRowsScanned); err != nil {
		return nil, "", err
	}

	rows, truncated, noisyTail, err := scanSampleRows(text, dialect, s.tailTolerance)
	if err != nil {
		return nil, "", NewErrorContext("row scanning", s.path).Error(err)
	}
	if noisyTail {
		s.reporter.Warn("sample tail noise discarded",
			"path", s.path, "tolerance", s.tailTolerance)
	}
	s.reporter.Debug("rows scanned", "rows", len(rows), "bytes", len(truncated))
	return rows, truncated, nil
}

func (s *profileSession) estimatePhase(ctx context.Context, truncated string, rowCount int, dialect model.Dialect) (ChunkSize, error) {
	if err := s.advance(ctx, stateEstimated); err != nil {
		return 0, err
	}

	// The estimator's byte size and row count must describe the same
	// structured span. Counting terminators would overcount rows, and
	// so shrink the average, whenever a quoted field spans lines.
	estText := estimationWindow(truncated, dialect.LineTerminator())
	estRows := rowCount
	if len(estText) < len(truncated) {
		windowRows, windowText, _, err := scanSampleRows(estText, dialect, s.tailTolerance)
		if err != nil {
			return 0, NewErrorContext("chunk estimation", s.path).Error(err)
		}
		estText = windowText
		estRows = len(windowRows)
	}

	chunkSize, err := estimateRowsPerChunk(len(estText), estRows, s.targetBytes)
	if err != nil {
		return 0, NewErrorContext("chunk estimation", s.path).Error(err)
	}
	return chunkSize, nil
}

// estimationWindow cuts the scanned sample down to the estimation
// ceiling, backing up to the last complete line so the byte count and
// the row count describe the same span.
func estimationWindow(text, terminator string) string {
	if len(text) <= DefaultEstimateSampleSize {
		return text
	}
	cut := strings.LastIndex(text[:DefaultEstimateSampleSize], terminator)
	if cut < 0 {
		return ""
	}
	return text[:cut+len(terminator)]
}
