package schema

import "errors"

var (
	// ErrInvalidSchema wraps every structural problem reported by Validate.
	ErrInvalidSchema = errors.New("schema: invalid schema")
	// ErrEmptyDocument is returned when a schema file has no content.
	ErrEmptyDocument = errors.New("schema: document is empty")
)
