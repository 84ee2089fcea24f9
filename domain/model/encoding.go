// Package model provides domain model for csvprobe
package model

import (
	"strconv"
	"strings"
)

// Confidence bounds reported by statistical encoding detection.
const (
	minConfidence = 0
	maxConfidence = 100
)

// EncodingGuess is the result of statistical encoding detection over
// a dataset sample: a canonical lower-cased encoding name plus a
// confidence score. Only the name is consumed downstream.
type EncodingGuess struct {
	name       string
	confidence int
}

// NewEncodingGuess create new EncodingGuess. The name is lower-cased
// before storage and the confidence is clamped to [0, 100].
func NewEncodingGuess(name string, confidence int) EncodingGuess {
	if confidence < minConfidence {
		confidence = minConfidence
	}
	if confidence > maxConfidence {
		confidence = maxConfidence
	}
	return EncodingGuess{
		name:       strings.ToLower(strings.TrimSpace(name)),
		confidence: confidence,
	}
}

// Name returns the canonical lower-cased encoding name.
func (e EncodingGuess) Name() string {
	return e.name
}

// Confidence returns the detection confidence in [0, 100].
func (e EncodingGuess) Confidence() int {
	return e.confidence
}

// IsZero reports whether no encoding was detected.
func (e EncodingGuess) IsZero() bool {
	return e.name == ""
}

// IsUTF8 reports whether the guess names UTF-8 or plain ASCII, both
// of which decode as identity.
func (e EncodingGuess) IsUTF8() bool {
	return e.name == "utf-8" || e.name == "ascii" || e.name == "us-ascii"
}

// String returns a display form such as "utf-8 (100%)".
func (e EncodingGuess) String() string {
	if e.IsZero() {
		return "unknown"
	}
	return e.name + " (" + strconv.Itoa(e.confidence) + "%)"
}
