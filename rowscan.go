package csvprobe

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/csvprobe/domain/model"
)

// scanSampleRows removes the partial trailing row from a byte-bounded
// sample and re-parses the rest as structured rows. A bounded read
// almost always cuts mid-row; counting rows without correcting for
// that skews every downstream size estimate.
//
// The decoded sample is walked line by line, recording the cursor
// offset after each line. The last recorded line is presumed partial
// and discarded by truncating at the second-to-last offset. The
// truncated text is then parsed with the dialect: a parse error whose
// line falls within the final tailTolerance recorded lines is
// sample-edge noise and is swallowed, keeping the rows parsed so far;
// an earlier parse error means the sniffed dialect does not hold and
// is fatal. The returned rows include the header row; the boolean
// reports whether boundary noise was swallowed, so the session can
// surface the event.
func scanSampleRows(text string, dialect model.Dialect, tailTolerance int) ([]model.Record, string, bool, error) {
	if tailTolerance < 0 {
		tailTolerance = DefaultTailTolerance
	}

	lineEnds := lineEndOffsets(text, dialect.LineTerminator())
	if len(lineEnds) < 2 {
		// Zero or one line observed; nothing survives discarding the
		// presumed-partial final line.
		return nil, "", false, nil
	}

	truncated := text[:lineEnds[len(lineEnds)-2]]
	lineCount := len(lineEnds) - 1

	rows, noisyTail, err := parseRows(truncated, dialect, lineCount, tailTolerance)
	if err != nil {
		return nil, "", false, err
	}
	return rows, truncated, noisyTail, nil
}

// lineEndOffsets returns the cursor offset after every line of text,
// including a final unterminated line when the text does not end on
// the terminator.
func lineEndOffsets(text, terminator string) []int {
	var ends []int
	cursor := 0
	for {
		i := strings.Index(text[cursor:], terminator)
		if i < 0 {
			break
		}
		cursor += i + len(terminator)
		ends = append(ends, cursor)
	}
	if cursor < len(text) {
		ends = append(ends, len(text))
	}
	return ends
}

// parseRows parses the truncated sample as structured rows. Parse
// errors inside the final tailTolerance lines are swallowed as sample
// boundary noise, reported through the boolean; earlier ones are
// reported as dialect drift.
func parseRows(text string, dialect model.Dialect, lineCount, tailTolerance int) ([]model.Record, bool, error) {
	reader := csv.NewReader(strings.NewReader(normalizeTerminator(text, dialect.LineTerminator())))
	reader.Comma = dialect.Delimiter()
	reader.FieldsPerRecord = -1
	// encoding/csv only understands double quotes; relax quote
	// handling when the dialect uses anything else.
	reader.LazyQuotes = dialect.Quote() != model.DefaultQuote

	rows := make([]model.Record, 0, lineCount)
	noisyTail := false
	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			// Tolerance is judged by the line the failing record starts
			// on: an unterminated quote near the boundary reports its
			// error line at the end of input, not where the row began.
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) && parseErr.StartLine > lineCount-tailTolerance {
				// Expected noise at the sample boundary; keep what parsed.
				noisyTail = true
				break
			}
			return nil, false, fmt.Errorf("%w: %v", ErrDialectDrift, err)
		}
		rows = append(rows, model.NewRecord(record))
	}
	return rows, noisyTail, nil
}

// normalizeTerminator rewrites CR-only line endings so encoding/csv,
// which only understands LF and CRLF, can parse the text.
func normalizeTerminator(text, terminator string) string {
	if terminator != model.LineTerminatorCR {
		return text
	}
	return strings.ReplaceAll(text, model.LineTerminatorCR, model.LineTerminatorLF)
}
