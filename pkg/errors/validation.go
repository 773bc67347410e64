package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidatePositive checks that a float parameter is finite and strictly
// greater than zero.
func ValidatePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidParameter, "%s must be a finite number, got %g", name, v)
	}
	if v <= 0 {
		return New(ErrCodeInvalidParameter, "%s must be > 0, got %g", name, v)
	}
	return nil
}

// ValidatePositiveInt checks that an integer parameter is strictly greater
// than zero.
func ValidatePositiveInt(name string, v int) error {
	if v <= 0 {
		return New(ErrCodeInvalidParameter, "%s must be > 0, got %d", name, v)
	}
	return nil
}

// ValidateNonNegativeInt checks that an integer parameter is zero or greater.
func ValidateNonNegativeInt(name string, v int) error {
	if v < 0 {
		return New(ErrCodeInvalidParameter, "%s must be >= 0, got %d", name, v)
	}
	return nil
}

// ValidateRange checks a [min, max) sampling range.
//
// Both bounds must be finite and min must not exceed max. A degenerate range
// (min == max) is allowed and always samples min. Values are never clamped:
// a bad range is reported so the caller can fix it.
func ValidateRange(name string, min, max float64) error {
	for _, v := range []float64{min, max} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidParameter, "%s bounds must be finite, got [%g, %g)", name, min, max)
		}
	}
	if min > max {
		return New(ErrCodeInvalidParameter, "%s min must not exceed max, got [%g, %g)", name, min, max)
	}
	return nil
}

// ValidatePositiveRange is [ValidateRange] with the extra requirement that
// both bounds are > 0.
func ValidatePositiveRange(name string, min, max float64) error {
	if err := ValidateRange(name, min, max); err != nil {
		return err
	}
	if min <= 0 {
		return New(ErrCodeInvalidParameter, "%s bounds must be > 0, got [%g, %g)", name, min, max)
	}
	return nil
}

// ValidateUnitRange is [ValidateRange] restricted to 0 <= min <= max <= 1.
func ValidateUnitRange(name string, min, max float64) error {
	if err := ValidateRange(name, min, max); err != nil {
		return err
	}
	if min < 0 || max > 1 {
		return New(ErrCodeInvalidParameter, "%s must lie within [0, 1], got [%g, %g)", name, min, max)
	}
	return nil
}

// ValidateOutputPath validates a destination path for a written artifact.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Must name a file, not a directory (no trailing separator)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "output path must name a file, got directory %q", path)
	}

	return nil
}
