package field

import "errors"

var (
	// ErrEmptyName is returned when a field is created without a name.
	ErrEmptyName = errors.New("field: name is required")

	// ErrInvalidRules is returned when the rule configuration is inconsistent.
	ErrInvalidRules = errors.New("field: invalid rule configuration")
)
