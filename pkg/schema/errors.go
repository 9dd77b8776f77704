package schema

import "errors"

var (
	ErrInvalidSchema = errors.New("schema: invalid definition")
	ErrUnknownRule   = errors.New("schema: unknown rule")
	ErrEmptyName     = errors.New("schema: form name is empty")
	ErrInvalidNode   = errors.New("schema: node must set exactly one of tag, text or field")
	ErrReadFailed    = errors.New("schema: failed to read definition")
)
