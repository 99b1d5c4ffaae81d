package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateFinite rejects NaN and infinite values.
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be a finite number", name)
	}
	return nil
}

// ValidateDimension rejects values that cannot be used as a width or height.
// Zero is allowed; the layout clamps it to a minimum positive extent.
func ValidateDimension(name string, v float64) error {
	if err := ValidateFinite(name, v); err != nil {
		return err
	}
	if v < 0 {
		return New(ErrCodeInvalidInput, "%s cannot be negative (got %g)", name, v)
	}
	return nil
}

// ValidateProgress rejects progress values that are not finite. Out-of-range
// values are accepted and clamped by the transition engine.
func ValidateProgress(p float64) error {
	return ValidateFinite("progress", p)
}

const maxPathLength = 500

// ValidatePath rejects empty, overlong or whitespace-padded paths and any
// path containing control characters.
func ValidatePath(path string) error {
	switch {
	case path == "":
		return New(ErrCodeInvalidPath, "path cannot be empty")
	case len(path) > maxPathLength:
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	case strings.TrimSpace(path) != path:
		return New(ErrCodeInvalidPath, "path cannot start or end with whitespace")
	case strings.IndexFunc(path, unicode.IsControl) >= 0:
		return New(ErrCodeInvalidPath, "path contains control characters")
	}
	return nil
}
