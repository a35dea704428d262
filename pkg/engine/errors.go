package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyOpen is returned by Open/OpenDefault on a non-closed engine.
	ErrAlreadyOpen = errors.New("stream already open")
	// ErrNotOpen is returned by Start on a closed engine.
	ErrNotOpen = errors.New("stream not open")
	// ErrNotRunning is returned by Stop on a non-running engine.
	ErrNotRunning = errors.New("stream not running")
)

// DriverError reports that the platform driver rejected a configuration or
// operation. Op names the engine operation that failed.
type DriverError struct {
	Op  string
	Err error
}

func (e *DriverError) Error() string {
	return fmt.Sprintf("driver %s failed: %v", e.Op, e.Err)
}

func (e *DriverError) Unwrap() error {
	return e.Err
}
