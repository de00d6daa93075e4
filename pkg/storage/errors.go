package storage

import (
	"errors"
	"fmt"
)

// ErrStorage matches every Fault via errors.Is.
var ErrStorage = errors.New("storage: fault")

// Fault reports a failed read, write, or removal against the backing store.
type Fault struct {
	Op  string
	Key string
	Err error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("storage: %s %q: %v", f.Op, f.Key, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// Is lets errors.Is(err, ErrStorage) match any fault.
func (f *Fault) Is(target error) bool {
	return target == ErrStorage
}
