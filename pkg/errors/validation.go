package errors

import (
	"math"
	"unicode"
)

// maxNodeIDLength bounds identifiers so labels stay renderable.
const maxNodeIDLength = 256

// ValidateNodeID validates a node identifier from user input.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters (they break DOT and SVG output)
//   - Maximum length of 256 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNodeID, "node id cannot be empty")
	}

	if len(id) > maxNodeIDLength {
		return New(ErrCodeInvalidNodeID, "node id too long (max %d characters)", maxNodeIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidNodeID, "node id %q contains control characters", id)
		}
	}

	return nil
}

// ValidatePositive checks that a numeric option is finite and greater than zero.
func ValidatePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidOption, "%s must be finite", name)
	}
	if v <= 0 {
		return New(ErrCodeInvalidOption, "%s must be positive, got %g", name, v)
	}
	return nil
}

// ValidateFinite checks that a numeric value is neither NaN nor infinite.
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be finite", name)
	}
	return nil
}
