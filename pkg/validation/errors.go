package validation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIncomplete matches every *Error via errors.Is.
var ErrIncomplete = errors.New("validation: required fields missing")

// Error reports the required fields left empty in a section.
type Error struct {
	Section int
	Fields  []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("validation: section %d: required fields missing: %s", e.Section, strings.Join(e.Fields, ", "))
}

// Is lets errors.Is(err, ErrIncomplete) match.
func (e *Error) Is(target error) bool {
	return target == ErrIncomplete
}
