package checkpoint

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no checkpoint matches the query
	ErrNotFound = errors.New("checkpoint not found")

	// ErrStoreClosed is returned when an operation is attempted on a
	// store that has not been initialized or has been closed
	ErrStoreClosed = errors.New("checkpoint store is not open")
)

// InitializationError is returned when the checkpoint store fails to
// initialize. The lifecycle stays uninitialized so a later acquire can
// retry.
type InitializationError struct {
	Path string
	Err  error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("checkpoint store at %s failed to initialize: %v", e.Path, e.Err)
}

func (e *InitializationError) Unwrap() error {
	return e.Err
}
