// Package model provides domain model for csvprobe
package model

import "errors"

// ErrEmptyDelimiter is returned when a Dialect is created without a delimiter
var ErrEmptyDelimiter = errors.New("delimiter must not be empty")

// ErrDelimiterQuoteConflict is returned when delimiter and quote are the same character
var ErrDelimiterQuoteConflict = errors.New("delimiter and quote must differ")

// ErrUnsupportedLineTerminator is returned for terminators other than LF, CRLF, or CR
var ErrUnsupportedLineTerminator = errors.New("unsupported line terminator")
