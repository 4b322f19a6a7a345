package ansi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"
)

// Request is an outbound escape sequence that expects a reply.
//
// A Request is completed at most once, with either the decoded reply or
// an error. Completion and the Done/Response accessors are safe for
// concurrent use.
type Request struct {
	// ID identifies the request in logs.
	ID string

	// Text is written to the terminal verbatim.
	Text string

	// Terminator is the suffix that ends the reply, usually a CSI final byte.
	Terminator string

	// Value, when set, must equal the first parameter of the reply. It
	// tells apart requests that share a terminator, such as the XTWINOPS
	// size reports.
	Value string

	// OnResponse, if set, is called once when the request completes.
	OnResponse func(Response)

	mu        sync.Mutex
	done      chan struct{}
	resp      Response
	completed bool
}

// NewRequest creates a request with a fresh ID.
func NewRequest(text, terminator string) *Request {
	return &Request{
		ID:         uuid.NewString(),
		Text:       text,
		Terminator: terminator,
		done:       make(chan struct{}),
	}
}

// DeviceAttributes requests the Primary Device Attributes (DA1) report.
func DeviceAttributes() *Request {
	return NewRequest(xansi.RequestPrimaryDeviceAttributes, "c")
}

// CursorPosition requests a Cursor Position Report (CPR).
func CursorPosition() *Request {
	return NewRequest(xansi.RequestCursorPositionReport, "R")
}

// TextAreaSize requests the text area size in characters (XTWINOPS 18).
// The reply is ESC [ 8 ; rows ; cols t.
func TextAreaSize() *Request {
	r := NewRequest(CSI+"18t", "t")
	r.Value = "8"
	return r
}

// Validate checks that the request can be sent and its reply recognized.
func (r *Request) Validate() error {
	switch {
	case r == nil:
		return fmt.Errorf("%w: nil request", ErrInvalidRequest)
	case r.Text == "":
		return fmt.Errorf("%w: empty text", ErrInvalidRequest)
	case !strings.HasPrefix(r.Text, string(ESC)):
		return fmt.Errorf("%w: text %q does not start with ESC", ErrInvalidRequest, r.Text)
	case r.Terminator == "":
		return fmt.Errorf("%w: empty terminator", ErrInvalidRequest)
	}
	return nil
}

// doneLocked returns the done channel, creating it for requests built
// without NewRequest. r.mu must be held.
func (r *Request) doneLocked() chan struct{} {
	if r.done == nil {
		r.done = make(chan struct{})
	}
	return r.done
}

// Done returns a channel closed when the request completes.
func (r *Request) Done() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.doneLocked()
}

// Response returns the response and whether the request has completed.
func (r *Request) Response() (Response, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resp, r.completed
}

// Completed reports whether the request has a response.
func (r *Request) Completed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.completed
}

// complete stores resp and wakes waiters. Later calls are ignored and
// return false. OnResponse runs after the lock is released.
func (r *Request) complete(resp Response) bool {
	r.mu.Lock()
	if r.completed {
		r.mu.Unlock()
		return false
	}
	r.resp = resp
	r.completed = true
	close(r.doneLocked())
	cb := r.OnResponse
	r.mu.Unlock()

	if cb != nil {
		cb(resp)
	}
	return true
}

// Abandon completes the request with ErrNoResponse if it has not
// completed yet.
func (r *Request) Abandon() bool {
	return r.complete(Response{
		Terminator: r.Terminator,
		Err:        errNoResponse(r),
	})
}

// Fail completes the request with err if it has not completed yet.
func (r *Request) Fail(err error) bool {
	return r.complete(Response{Terminator: r.Terminator, Err: err})
}

// Response is the outcome of a request. It is immutable once delivered.
type Response struct {
	// Raw is the full reply as received.
	Raw string

	// Err is set when there was no usable reply. It wraps ErrNoResponse or
	// ErrMalformedResponse.
	Err error

	// Terminator is the terminator the reply was matched on.
	Terminator string

	// Value is the first parameter of the reply.
	Value string

	// Params holds the numeric parameters of the reply.
	Params []int

	// Elapsed is the time between registration and completion.
	Elapsed time.Duration
}

// OK reports whether the response carries a well-formed reply.
func (r Response) OK() bool {
	return r.Err == nil
}

// Abandoned reports whether the request was given up without a reply.
func (r Response) Abandoned() bool {
	return errors.Is(r.Err, ErrNoResponse)
}

// Param returns parameter i, or def when it is absent.
func (r Response) Param(i, def int) int {
	if i < 0 || i >= len(r.Params) {
		return def
	}
	return r.Params[i]
}

// responseFields strips the introducer, the terminator and any private
// marker from seq and splits the remaining parameters.
func responseFields(seq, terminator string) []string {
	body := strings.TrimSuffix(seq, terminator)
	switch {
	case strings.HasPrefix(body, CSI):
		body = body[len(CSI):]
	case strings.HasPrefix(body, string(ESC)):
		body = body[1:]
	}
	body = strings.TrimLeft(body, "?>=")
	if body == "" {
		return nil
	}
	return strings.Split(body, ";")
}

// firstParam returns the first parameter of seq.
func firstParam(seq, terminator string) string {
	fields := responseFields(seq, terminator)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// decodeResponse builds the response for seq matched on terminator.
// Correlator.Match only passes held sequences, which start with ESC and
// end in terminator, so from there the only malformed reply is a
// non-numeric parameter. The framing check covers other callers.
func decodeResponse(seq, terminator string) Response {
	resp := Response{Raw: seq, Terminator: terminator}
	if !strings.HasPrefix(seq, string(ESC)) || !strings.HasSuffix(seq, terminator) {
		resp.Err = fmt.Errorf("%w: %q does not match terminator %q", ErrMalformedResponse, seq, terminator)
		return resp
	}

	fields := responseFields(seq, terminator)
	if len(fields) > 0 {
		resp.Value = fields[0]
	}
	for _, f := range fields {
		if f == "" {
			resp.Params = append(resp.Params, 0)
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			resp.Err = fmt.Errorf("%w: parameter %q in %q", ErrMalformedResponse, f, seq)
			return resp
		}
		resp.Params = append(resp.Params, n)
	}
	return resp
}
