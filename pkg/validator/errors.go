package validator

import "errors"

var (
	// ErrValidationFailed is returned when validation fails but no specific error is provided.
	ErrValidationFailed = errors.New("validation failed")

	// ErrUnknownRule is returned when a rule name is not part of the rule set.
	ErrUnknownRule = errors.New("unknown validation rule")

	// ErrInvalidParameter is returned when a rule parameter is out of range.
	ErrInvalidParameter = errors.New("invalid rule parameter")
)
