package static

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the path does not exist under the root.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the path exists but can't be read.
	ErrForbidden = errors.New("forbidden")
)

// BindError is returned by Listen when the port can't be bound.
type BindError struct {
	Addr string
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("bind %s: %v", e.Addr, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}
