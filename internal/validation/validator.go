package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Limits holds the configurable bounds applied to task fields.
type Limits struct {
	TitleMinLength       int
	TitleMaxLength       int
	DescriptionMaxLength int
}

// DefaultLimits returns the limits used when no configuration is supplied.
func DefaultLimits() Limits {
	return Limits{
		TitleMinLength:       1,
		TitleMaxLength:       200,
		DescriptionMaxLength: 2000,
	}
}

// Validator provides common validation utilities
type Validator struct {
	limits Limits
}

// NewValidator creates a new validator instance with default limits
func NewValidator() *Validator {
	return &Validator{limits: DefaultLimits()}
}

// NewValidatorWithLimits creates a new validator instance with the given limits
func NewValidatorWithLimits(limits Limits) *Validator {
	return &Validator{limits: limits}
}

// Limits returns the limits this validator enforces
func (v *Validator) Limits() Limits {
	return v.limits
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if the trimmed rune count of s is within [min, max].
// A max of zero disables the upper bound.
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	if length < min {
		return false
	}
	return max <= 0 || length <= max
}

// IsSingleLine reports whether s contains no control characters such as newlines or tabs
func (v *Validator) IsSingleLine(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}
