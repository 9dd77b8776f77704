package form

import "errors"

var (
	ErrNilTree        = errors.New("form: tree is nil")
	ErrNilField       = errors.New("form: field node has no field")
	ErrEmptyFieldName = errors.New("form: field name is empty")
	ErrDuplicateField = errors.New("form: duplicate field name")
	ErrUnknownField   = errors.New("form: unknown field")
)
