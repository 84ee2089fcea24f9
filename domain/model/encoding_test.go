package model

import "testing"

func TestNewEncodingGuess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		encodingName   string
		confidence     int
		wantName       string
		wantConfidence int
	}{
		{
			name:           "Upper case name is lowered",
			encodingName:   "UTF-8",
			confidence:     100,
			wantName:       "utf-8",
			wantConfidence: 100,
		},
		{
			name:           "Mixed case with whitespace",
			encodingName:   " ISO-8859-1 ",
			confidence:     42,
			wantName:       "iso-8859-1",
			wantConfidence: 42,
		},
		{
			name:           "Negative confidence clamped to zero",
			encodingName:   "windows-1252",
			confidence:     -5,
			wantName:       "windows-1252",
			wantConfidence: 0,
		},
		{
			name:           "Confidence above 100 clamped",
			encodingName:   "utf-8",
			confidence:     250,
			wantName:       "utf-8",
			wantConfidence: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := NewEncodingGuess(tt.encodingName, tt.confidence)
			if g.Name() != tt.wantName {
				t.Errorf("Name() = %s, want %s", g.Name(), tt.wantName)
			}
			if g.Confidence() != tt.wantConfidence {
				t.Errorf("Confidence() = %d, want %d", g.Confidence(), tt.wantConfidence)
			}
		})
	}
}

func TestEncodingGuess_IsZero(t *testing.T) {
	t.Parallel()

	t.Run("Zero value", func(t *testing.T) {
		t.Parallel()

		var g EncodingGuess
		if !g.IsZero() {
			t.Error("expected zero EncodingGuess to report IsZero")
		}
	})

	t.Run("Detected value", func(t *testing.T) {
		t.Parallel()

		g := NewEncodingGuess("utf-8", 80)
		if g.IsZero() {
			t.Error("expected detected EncodingGuess not to report IsZero")
		}
	})
}

func TestEncodingGuess_IsUTF8(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		encoding string
		expected bool
	}{
		{name: "utf-8", encoding: "UTF-8", expected: true},
		{name: "ascii", encoding: "ASCII", expected: true},
		{name: "us-ascii", encoding: "US-ASCII", expected: true},
		{name: "latin-1", encoding: "ISO-8859-1", expected: false},
		{name: "shift_jis", encoding: "Shift_JIS", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := NewEncodingGuess(tt.encoding, 100)
			if got := g.IsUTF8(); got != tt.expected {
				t.Errorf("IsUTF8() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestEncodingGuess_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		guess    EncodingGuess
		expected string
	}{
		{name: "Detected", guess: NewEncodingGuess("UTF-8", 93), expected: "utf-8 (93%)"},
		{name: "Unknown", guess: EncodingGuess{}, expected: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.guess.String(); got != tt.expected {
				t.Errorf("String() = %s, want %s", got, tt.expected)
			}
		})
	}
}
