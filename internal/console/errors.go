package console

import (
	"errors"
	"fmt"
)

// Errors returned by Loop operations.
var (
	// ErrAlreadyRunning indicates Start was called on a running loop.
	ErrAlreadyRunning = errors.New("console: already running")

	// ErrNotRunning indicates the loop has not been started.
	ErrNotRunning = errors.New("console: not running")

	// ErrStopped indicates the loop has been stopped and cannot be reused.
	// It wraps ErrNotRunning.
	ErrStopped = fmt.Errorf("%w: stopped", ErrNotRunning)
)

// HandlerPanicError records a panic raised by an event handler.
type HandlerPanicError struct {
	// Handler names the handler: "key", "mouse" or "response".
	Handler string
	// Value is the recovered panic value.
	Value any
}

// Error implements the error interface.
func (e *HandlerPanicError) Error() string {
	return fmt.Sprintf("console: %s handler panicked: %v", e.Handler, e.Value)
}
