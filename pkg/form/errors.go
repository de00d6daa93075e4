package form

import "errors"

var (
	// ErrUnknownField is returned when an id is not declared by the schema.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrInvalidValue is returned when a value does not fit the field kind.
	ErrInvalidValue = errors.New("form: invalid value")
)
