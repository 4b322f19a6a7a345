package driver

import (
	"errors"
	"fmt"
)

// Sentinel errors for the driver package.
var (
	// ErrUnsupported is returned when a driver is not available on this platform.
	ErrUnsupported = errors.New("driver not supported on this platform")

	// ErrNotTerminal is returned when the input handle is not a terminal.
	ErrNotTerminal = errors.New("not a terminal")

	// ErrClosed is returned by operations on a disposed driver.
	ErrClosed = errors.New("driver is closed")

	// ErrCanceled is returned by Read after Cancel.
	ErrCanceled = errors.New("read canceled")

	// ErrUnknownKind is returned by New for an unrecognized driver kind.
	ErrUnknownKind = errors.New("unknown driver kind")
)

// Error reports a failure to change or restore terminal state. These
// failures mean the terminal is unusable and are never retried.
type Error struct {
	Driver string // Driver name (e.g., "legacy", "vt")
	Op     string // Operation (e.g., "init", "dispose", "size")
	Err    error  // Underlying error
}

func newError(driver, op string, err error) *Error {
	return &Error{Driver: driver, Op: op, Err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s driver: %s: %v", e.Driver, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}
