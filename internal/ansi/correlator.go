package ansi

import (
	"strings"
	"time"
)

// expectation is an outstanding request and when it was registered.
type expectation struct {
	req          *Request
	registeredAt time.Time
}

// Correlator matches incoming sequences to outstanding requests.
//
// Expectations are kept in registration order and the oldest matching one
// wins. A Correlator is not safe for concurrent use; it implements Matcher
// for the Parser owned by the same goroutine.
type Correlator struct {
	pending []expectation
	now     func() time.Time
}

// NewCorrelator creates an empty correlator.
func NewCorrelator() *Correlator {
	return &Correlator{now: time.Now}
}

// Expect registers req. A request already registered is ignored.
func (c *Correlator) Expect(req *Request) {
	if c.indexOf(req) >= 0 {
		return
	}
	c.pending = append(c.pending, expectation{req: req, registeredAt: c.clock()})
}

// Match completes the oldest request whose terminator ends seq and whose
// Value, if any, equals the first parameter of seq.
func (c *Correlator) Match(seq string) bool {
	for i, exp := range c.pending {
		req := exp.req
		if !strings.HasSuffix(seq, req.Terminator) {
			continue
		}
		if req.Value != "" && firstParam(seq, req.Terminator) != req.Value {
			continue
		}
		c.remove(i)
		resp := decodeResponse(seq, req.Terminator)
		resp.Elapsed = c.clock().Sub(exp.registeredAt)
		req.complete(resp)
		return true
	}
	return false
}

// Abandon removes req and completes it with ErrNoResponse. It reports
// whether req was outstanding.
func (c *Correlator) Abandon(req *Request) bool {
	i := c.indexOf(req)
	if i < 0 {
		return false
	}
	exp := c.pending[i]
	c.remove(i)
	c.abandon(exp)
	return true
}

// AbandonAll abandons every outstanding request, oldest first, and
// returns how many there were.
func (c *Correlator) AbandonAll() int {
	pending := c.pending
	c.pending = nil
	for _, exp := range pending {
		c.abandon(exp)
	}
	return len(pending)
}

// Len returns the number of outstanding requests.
func (c *Correlator) Len() int {
	return len(c.pending)
}

// Outstanding returns the outstanding requests, oldest first.
func (c *Correlator) Outstanding() []*Request {
	out := make([]*Request, len(c.pending))
	for i, exp := range c.pending {
		out[i] = exp.req
	}
	return out
}

func (c *Correlator) abandon(exp expectation) {
	exp.req.complete(Response{
		Terminator: exp.req.Terminator,
		Err:        errNoResponse(exp.req),
		Elapsed:    c.clock().Sub(exp.registeredAt),
	})
}

func (c *Correlator) indexOf(req *Request) int {
	for i, exp := range c.pending {
		if exp.req == req {
			return i
		}
	}
	return -1
}

func (c *Correlator) remove(i int) {
	c.pending = append(c.pending[:i], c.pending[i+1:]...)
}

func (c *Correlator) clock() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}
