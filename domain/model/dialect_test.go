package model

import (
	"errors"
	"testing"
)

func TestNewDialect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		delimiter      rune
		quote          rune
		lineTerminator string
		wantErr        error
	}{
		{
			name:           "Comma with double quote and LF",
			delimiter:      ',',
			quote:          '"',
			lineTerminator: LineTerminatorLF,
		},
		{
			name:           "Tab with CRLF",
			delimiter:      '\t',
			quote:          '"',
			lineTerminator: LineTerminatorCRLF,
		},
		{
			name:           "Semicolon with CR",
			delimiter:      ';',
			quote:          '\'',
			lineTerminator: LineTerminatorCR,
		},
		{
			name:      "Empty delimiter",
			delimiter: 0,
			wantErr:   ErrEmptyDelimiter,
		},
		{
			name:           "Delimiter equals quote",
			delimiter:      '"',
			quote:          '"',
			lineTerminator: LineTerminatorLF,
			wantErr:        ErrDelimiterQuoteConflict,
		},
		{
			name:           "Unsupported terminator",
			delimiter:      ',',
			quote:          '"',
			lineTerminator: "\n\n",
			wantErr:        ErrUnsupportedLineTerminator,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d, err := NewDialect(tt.delimiter, tt.quote, tt.lineTerminator)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NewDialect() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewDialect() unexpected error: %v", err)
			}
			if d.Delimiter() != tt.delimiter {
				t.Errorf("Delimiter() = %q, want %q", d.Delimiter(), tt.delimiter)
			}
			if d.Quote() != tt.quote {
				t.Errorf("Quote() = %q, want %q", d.Quote(), tt.quote)
			}
			if d.LineTerminator() != tt.lineTerminator {
				t.Errorf("LineTerminator() = %q, want %q", d.LineTerminator(), tt.lineTerminator)
			}
		})
	}
}

func TestNewDialect_Defaults(t *testing.T) {
	t.Parallel()

	t.Run("Zero quote falls back to double quote", func(t *testing.T) {
		t.Parallel()

		d, err := NewDialect(',', 0, LineTerminatorLF)
		if err != nil {
			t.Fatalf("NewDialect() unexpected error: %v", err)
		}
		if d.Quote() != DefaultQuote {
			t.Errorf("Quote() = %q, want %q", d.Quote(), DefaultQuote)
		}
	})

	t.Run("Empty terminator falls back to LF", func(t *testing.T) {
		t.Parallel()

		d, err := NewDialect(',', '"', "")
		if err != nil {
			t.Fatalf("NewDialect() unexpected error: %v", err)
		}
		if d.LineTerminator() != LineTerminatorLF {
			t.Errorf("LineTerminator() = %q, want %q", d.LineTerminator(), LineTerminatorLF)
		}
	})

	t.Run("Escape is quote doubling by default", func(t *testing.T) {
		t.Parallel()

		d, err := NewDialect(',', '"', LineTerminatorLF)
		if err != nil {
			t.Fatalf("NewDialect() unexpected error: %v", err)
		}
		if d.Escape() != 0 {
			t.Errorf("Escape() = %q, want zero", d.Escape())
		}
	})
}

func TestDialect_Equal(t *testing.T) {
	t.Parallel()

	comma, err := NewDialect(',', '"', LineTerminatorLF)
	if err != nil {
		t.Fatal(err)
	}
	tab, err := NewDialect('\t', '"', LineTerminatorLF)
	if err != nil {
		t.Fatal(err)
	}
	commaCRLF, err := NewDialect(',', '"', LineTerminatorCRLF)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		d1       Dialect
		d2       Dialect
		expected bool
	}{
		{name: "Same dialect", d1: comma, d2: comma, expected: true},
		{name: "Different delimiter", d1: comma, d2: tab, expected: false},
		{name: "Different terminator", d1: comma, d2: commaCRLF, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.d1.Equal(tt.d2); got != tt.expected {
				t.Errorf("Equal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDialect_IsZero(t *testing.T) {
	t.Parallel()

	t.Run("Zero value", func(t *testing.T) {
		t.Parallel()

		var d Dialect
		if !d.IsZero() {
			t.Error("expected zero Dialect to report IsZero")
		}
	})

	t.Run("Initialized value", func(t *testing.T) {
		t.Parallel()

		d, err := NewDialect(',', '"', LineTerminatorLF)
		if err != nil {
			t.Fatal(err)
		}
		if d.IsZero() {
			t.Error("expected initialized Dialect not to report IsZero")
		}
	})
}

func TestDialect_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		lineTerminator string
		want           string
	}{
		{name: "LF", lineTerminator: LineTerminatorLF, want: `delimiter=',' quote='"' terminator=LF`},
		{name: "CRLF", lineTerminator: LineTerminatorCRLF, want: `delimiter=',' quote='"' terminator=CRLF`},
		{name: "CR", lineTerminator: LineTerminatorCR, want: `delimiter=',' quote='"' terminator=CR`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d, err := NewDialect(',', '"', tt.lineTerminator)
			if err != nil {
				t.Fatal(err)
			}
			if got := d.String(); got != tt.want {
				t.Errorf("String() = %s, want %s", got, tt.want)
			}
		})
	}
}
