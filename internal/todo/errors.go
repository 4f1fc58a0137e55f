package todo

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is returned when a required field is empty.
	ErrValidation = errors.New("please fill all fields")
	// ErrOutOfRange is returned when no task sits at the requested position.
	ErrOutOfRange = errors.New("no task at that position")
	// ErrMalformedRecord is returned for a persisted record that cannot
	// describe a task.
	ErrMalformedRecord = errors.New("malformed task record")
)

// PersistenceError reports a failed read or write of persisted tasks.
type PersistenceError struct {
	Op   string // load, save or export
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsPersistence reports whether err is or wraps a *PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
