package validator

import "regexp"

// jsSpace is the whitespace class of browser regular expressions, which is
// wider than RE2's ASCII-only \s.
const jsSpace = `\t\n\v\f\r \x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}`

// emailRegex accepts an unquoted local part without special characters or
// whitespace, or a quoted one on a single line, followed by a bracketed IPv4
// literal or a dotted domain whose last label has at least two letters.
var emailRegex = regexp.MustCompile(`^(([^<>()\[\]\\.,;:` + jsSpace + `@"]+(\.[^<>()\[\]\\.,;:` + jsSpace + `@"]+)*)|("[^\n\r\x{2028}\x{2029}]+"))@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\])|(([a-zA-Z\-0-9]+\.)+[a-zA-Z]{2,}))$`)

// IsEmailAddress reports whether value has the shape of an email address.
func IsEmailAddress(value string) bool {
	return emailRegex.MatchString(value)
}

// Email validates that a string looks like an email address.
func Email(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return IsEmailAddress(value)
		},
		Error: ValidationError{
			Field:   field,
			Rule:    IsEmail,
			Message: "must be a valid email address",
			Param:   true,
		},
	}
}
