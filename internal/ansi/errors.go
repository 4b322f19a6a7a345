package ansi

import (
	"errors"
	"fmt"
)

// Sentinel errors for the ansi package.
var (
	// ErrInvalidRequest is returned when a request cannot be sent as given.
	ErrInvalidRequest = errors.New("invalid escape sequence request")

	// ErrMalformedResponse reports a reply that does not start with ESC or
	// does not end with the expected terminator.
	ErrMalformedResponse = errors.New("malformed escape sequence response")

	// ErrNoResponse reports a request abandoned without any reply.
	ErrNoResponse = errors.New("no response to escape sequence request")
)

func errNoResponse(req *Request) error {
	return fmt.Errorf("%w: request %s", ErrNoResponse, req.ID)
}
