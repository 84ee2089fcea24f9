package csvprobe

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"
)

// validator handles input validation for ProfileBuilder
type validator struct {
	// No configuration needed for now, but keeping struct for future extensibility
}

// newValidator creates a new validator instance
func newValidator() *validator {
	return &validator{}
}

// validatePath validates a single file or directory path
func (v *validator) validatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("failed to load file: path does not exist: %s", path)
		}
		return fmt.Errorf("failed to stat path %s: %w", path, err)
	}

	// For files, check if they are supported
	if !info.IsDir() {
		if !isSupportedFile(path) {
			return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
		}
	}

	return nil
}

// validateDelimiterHint rejects hint runes that can never separate
// fields. Quote characters, line terminators, and letters or digits
// would make every row parse as a single field or split words apart.
func (v *validator) validateDelimiterHint(hint rune) error {
	if hint == 0 {
		return nil // no hint
	}
	if hint == '"' || hint == '\r' || hint == '\n' {
		return fmt.Errorf("invalid delimiter hint %q: conflicts with quoting or line termination", hint)
	}
	if unicode.IsLetter(hint) || unicode.IsDigit(hint) {
		return fmt.Errorf("invalid delimiter hint %q: letters and digits cannot delimit fields", hint)
	}
	return nil
}

// validateTargetChunkBytes validates a target chunk payload size
func (v *validator) validateTargetChunkBytes(targetBytes int) error {
	if targetBytes < 0 {
		return fmt.Errorf("target chunk bytes must not be negative, got %d", targetBytes)
	}
	return nil
}

// validateTailTolerance validates the sample-edge parse tolerance
func (v *validator) validateTailTolerance(tolerance int) error {
	if tolerance < 0 {
		return fmt.Errorf("tail tolerance must not be negative, got %d", tolerance)
	}
	return nil
}

// validateFinalState ensures Build collected at least one profilable file
func (v *validator) validateFinalState(collectedPaths, originalPaths []string) error {
	if len(collectedPaths) == 0 {
		for _, path := range originalPaths {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				return errors.New("no supported files found in directory")
			}
		}
		return errors.New("no valid input files found")
	}
	return nil
}

// validateInputsAvailable checks that Build ran before Profile
func (v *validator) validateInputsAvailable(collectedPaths []string) error {
	if len(collectedPaths) == 0 {
		return errors.New("no valid input files found, did you call Build()?")
	}
	return nil
}
