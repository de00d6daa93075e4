package export

import (
	"errors"
	"fmt"
)

// ErrExport matches every Fault via errors.Is.
var ErrExport = errors.New("export: fault")

// Fault reports a report that could not be delivered.
type Fault struct {
	Name string
	Err  error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("export: %s: %v", f.Name, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

func (f *Fault) Is(target error) bool {
	return target == ErrExport
}
