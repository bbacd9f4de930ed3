package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxLabelLength is the longest group label accepted, in bytes.
const MaxLabelLength = 256

// ValidateScale checks that a chart scale is a finite, strictly positive number.
func ValidateScale(scale float64) error {
	if math.IsNaN(scale) || math.IsInf(scale, 0) {
		return New(ErrCodeInvalidScale, "scale must be a finite number, got %v", scale)
	}
	if scale <= 0 {
		return New(ErrCodeInvalidScale, "scale must be positive, got %v", scale)
	}
	return nil
}

// ValidateLabel validates a group label.
// Empty labels are allowed; they simply produce an unnamed group.
//
// The validation rules are intentionally conservative:
//   - Maximum length of [MaxLabelLength] bytes
//   - No control characters or null bytes
func ValidateLabel(label string) error {
	if len(label) > MaxLabelLength {
		return New(ErrCodeInvalidGroup, "group label too long (max %d characters)", MaxLabelLength)
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidGroup, "group label %q contains invalid control characters", label)
		}
	}
	return nil
}

// ValidateSeatCount checks that a group seat count is non-negative.
func ValidateSeatCount(label string, numSeats int) error {
	if numSeats < 0 {
		return New(ErrCodeInvalidGroup, "group %q: seat count must be non-negative, got %d", label, numSeats)
	}
	return nil
}

// ValidatePath validates an output path passed on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.TrimSpace(path) != path {
		return New(ErrCodeInvalidPath, "path cannot start or end with whitespace")
	}

	return nil
}
