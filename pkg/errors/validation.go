package errors

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// ValidateChartID checks that id is a canonical UUID, the form storage
// backends assign.
func ValidateChartID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "chart id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return New(ErrCodeInvalidInput, "invalid chart id: %q", id)
	}
	return nil
}

// ValidateChartName validates a chart's display name.
//
// Validation rules:
//   - Maximum length of 256 characters
//   - No control characters
//   - No path separators (names may become file names)
func ValidateChartName(name string) error {
	const maxNameLength = 256
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "chart name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "chart name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return New(ErrCodeInvalidInput, "chart name cannot contain path separators")
	}

	return nil
}

// ValidateIndividualID validates an individual's external ID.
// GEDCOM cross-reference IDs are short; anything containing whitespace or
// the @ delimiter cannot round-trip.
func ValidateIndividualID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidChart, "individual id cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidChart, "individual id too long: %q", id[:32]+"...")
	}
	if strings.ContainsFunc(id, func(r rune) bool { return unicode.IsSpace(r) || unicode.IsControl(r) || r == '@' }) {
		return New(ErrCodeInvalidChart, "individual id contains invalid characters: %q", id)
	}
	return nil
}
