// Package model provides domain model for csvprobe
package model

import (
	"fmt"
	"strings"
)

// Line terminator representations supported by Dialect.
const (
	// LineTerminatorLF is a bare line feed terminator.
	LineTerminatorLF = "\n"
	// LineTerminatorCRLF is a carriage return plus line feed terminator.
	LineTerminatorCRLF = "\r\n"
	// LineTerminatorCR is a bare carriage return terminator.
	LineTerminatorCR = "\r"
)

// DefaultQuote is the quote character assumed when none is detected.
const DefaultQuote = '"'

// Dialect describes how a delimited-text dataset is structured:
// field delimiter, quote character, line terminator, and escape
// semantics. A Dialect is immutable once created and is passed by
// value between components; one profiling session produces at most
// one Dialect and reuses it for every parse of the same dataset.
type Dialect struct {
	delimiter      rune
	quote          rune
	lineTerminator string
	// escape is the escape character inside quoted fields.
	// Zero means quote doubling, the common CSV convention.
	escape rune
}

// NewDialect create new Dialect with validation. The delimiter is
// required. A zero quote falls back to DefaultQuote and an empty
// terminator falls back to LineTerminatorLF so every field of the
// returned value holds exactly one canonical representation.
func NewDialect(delimiter, quote rune, lineTerminator string) (Dialect, error) {
	if delimiter == 0 {
		return Dialect{}, ErrEmptyDelimiter
	}
	if quote == 0 {
		quote = DefaultQuote
	}
	if delimiter == quote {
		return Dialect{}, fmt.Errorf("%w: %q", ErrDelimiterQuoteConflict, delimiter)
	}
	if lineTerminator == "" {
		lineTerminator = LineTerminatorLF
	}
	switch lineTerminator {
	case LineTerminatorLF, LineTerminatorCRLF, LineTerminatorCR:
	default:
		return Dialect{}, fmt.Errorf("%w: %q", ErrUnsupportedLineTerminator, lineTerminator)
	}
	return Dialect{
		delimiter:      delimiter,
		quote:          quote,
		lineTerminator: lineTerminator,
	}, nil
}

// Delimiter returns the field delimiter.
func (d Dialect) Delimiter() rune {
	return d.delimiter
}

// Quote returns the quote character.
func (d Dialect) Quote() rune {
	return d.quote
}

// LineTerminator returns the line terminator string.
func (d Dialect) LineTerminator() string {
	return d.lineTerminator
}

// Escape returns the escape character, or zero when quote doubling
// is in effect.
func (d Dialect) Escape() rune {
	return d.escape
}

// Equal compare Dialect.
func (d Dialect) Equal(d2 Dialect) bool {
	return d.delimiter == d2.delimiter &&
		d.quote == d2.quote &&
		d.lineTerminator == d2.lineTerminator &&
		d.escape == d2.escape
}

// IsZero reports whether the Dialect has not been initialized.
func (d Dialect) IsZero() bool {
	return d == Dialect{}
}

// String returns a display form such as `delimiter=',' quote='"' terminator=LF`.
func (d Dialect) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "delimiter=%q quote=%q terminator=%s", d.delimiter, d.quote, terminatorName(d.lineTerminator))
	return b.String()
}

// terminatorName maps a terminator to its display name.
func terminatorName(t string) string {
	switch t {
	case LineTerminatorCRLF:
		return "CRLF"
	case LineTerminatorCR:
		return "CR"
	default:
		return "LF"
	}
}
