package validator

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Length returns the number of characters in value: Unicode code points
// after NFC normalisation, so composed and decomposed forms of the same text
// have the same length. This differs from browser JavaScript, which counts
// UTF-16 code units: an emoji outside the BMP is 1 here and 2 there.
func Length(value string) int {
	return utf8.RuneCountInString(norm.NFC.String(value))
}

// Required validates that a value is not empty.
// Whitespace counts as content.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return Length(value) != 0
		},
		Error: ValidationError{
			Field:   field,
			Rule:    IsRequired,
			Message: "field is required",
			Param:   true,
		},
	}
}

func MinLen(field, value string, min int) Rule {
	return Rule{
		Check: func() bool {
			return Length(value) >= min
		},
		Error: ValidationError{
			Field:   field,
			Rule:    MinLength,
			Message: fmt.Sprintf("must be at least %d characters long", min),
			Param:   min,
		},
	}
}

func MaxLen(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return Length(value) <= max
		},
		Error: ValidationError{
			Field:   field,
			Rule:    MaxLength,
			Message: fmt.Sprintf("must be at most %d characters long", max),
			Param:   max,
		},
	}
}
