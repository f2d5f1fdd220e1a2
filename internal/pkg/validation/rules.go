package validation

import (
	"regexp"
	"unicode/utf8"
)

// Validation rule patterns
var (
	// Avatar file extension: 1-10 ASCII letters or digits
	ExtensionPattern = `^[A-Za-z0-9]{1,10}$`

	// Name validation min/max length, in characters
	NameMinLength = 1
	NameMaxLength = 255

	// Color validation max length
	ColorMaxLength = 64

	// Student age bounds
	AgeMin = 0
	AgeMax = 200
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Extension *regexp.Regexp
}{
	Extension: regexp.MustCompile(ExtensionPattern),
}

// StringValidation validates a single string value
type StringValidation struct {
	Value   string
	MinLen  int
	MaxLen  int
	Pattern *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{Value: value}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// Validate performs validation. Empty values never pass; lengths are counted in runes.
func (v *StringValidation) Validate() bool {
	if v.Value == "" {
		return false
	}

	length := utf8.RuneCountInString(v.Value)
	if v.MinLen > 0 && length < v.MinLen {
		return false
	}

	if v.MaxLen > 0 && length > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}

// NumericValidation validates an integer against optional bounds
type NumericValidation struct {
	Value  int
	Min    int
	Max    int
	hasMin bool
	hasMax bool
}

// NewNumericValidation creates a new numeric validation
func NewNumericValidation(value int) *NumericValidation {
	return &NumericValidation{Value: value}
}

// WithMin sets minimum value (inclusive)
func (v *NumericValidation) WithMin(min int) *NumericValidation {
	v.Min = min
	v.hasMin = true
	return v
}

// WithMax sets maximum value (inclusive)
func (v *NumericValidation) WithMax(max int) *NumericValidation {
	v.Max = max
	v.hasMax = true
	return v
}

// Validate performs validation
func (v *NumericValidation) Validate() bool {
	if v.hasMin && v.Value < v.Min {
		return false
	}

	if v.hasMax && v.Value > v.Max {
		return false
	}

	return true
}

// IsValidName reports whether s is an acceptable student or faculty name
func IsValidName(s string) bool {
	return NewStringValidation(s).
		WithMinLength(NameMinLength).
		WithMaxLength(NameMaxLength).
		Validate()
}

// IsValidColor reports whether s is an acceptable faculty color
func IsValidColor(s string) bool {
	return NewStringValidation(s).WithMaxLength(ColorMaxLength).Validate()
}

// IsValidAge reports whether age lies within the accepted bounds
func IsValidAge(age int) bool {
	return NewNumericValidation(age).WithMin(AgeMin).WithMax(AgeMax).Validate()
}

// IsValidExtension reports whether ext is an acceptable avatar file extension
func IsValidExtension(ext string) bool {
	return NewStringValidation(ext).WithPattern(CompiledPatterns.Extension).Validate()
}
