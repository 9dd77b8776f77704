package validator

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	decimalRegex  = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?$`)
	infinityRegex = regexp.MustCompile(`^[+-]?Infinity$`)
	radixRegex    = regexp.MustCompile(`^0(?:[xX][0-9a-fA-F]+|[oO][0-7]+|[bB][01]+)$`)
)

// IsNumber reports whether value coerces to a number the way browsers do for
// form input: surrounding whitespace is ignored, the empty string is zero,
// decimal, exponent, Infinity and 0x/0o/0b literals are numbers.
func IsNumber(value string) bool {
	s := strings.TrimFunc(value, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
	if s == "" {
		return true
	}
	return decimalRegex.MatchString(s) || infinityRegex.MatchString(s) || radixRegex.MatchString(s)
}

// Numeric validates that a value is a number.
func Numeric(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return IsNumber(value)
		},
		Error: ValidationError{
			Field:   field,
			Rule:    IsNumeric,
			Message: "must be a number",
			Param:   true,
		},
	}
}

// NotNumeric validates that a value is not a number.
func NotNumeric(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return !IsNumber(value)
		},
		Error: ValidationError{
			Field:   field,
			Rule:    IsNotNumeric,
			Message: "must not be a number",
			Param:   true,
		},
	}
}
