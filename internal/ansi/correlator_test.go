package ansi

import (
	"errors"
	"testing"
	"time"
)

func TestCorrelatorMatchDeviceAttributes(t *testing.T) {
	c := NewCorrelator()
	req := DeviceAttributes()
	c.Expect(req)

	p := NewParser[rec](c)
	got := p.Process(tokens("\x1b[?1;2c"))
	if len(got) != 0 {
		t.Fatalf("reply leaked through the parser: %q", chunkStrings(got))
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}

	select {
	case <-req.Done():
	default:
		t.Fatal("request not completed")
	}
	resp, ok := req.Response()
	if !ok || !resp.OK() {
		t.Fatalf("Response() = %+v, %v", resp, ok)
	}
	if resp.Raw != "\x1b[?1;2c" {
		t.Errorf("Raw = %q", resp.Raw)
	}
	if resp.Value != "1" {
		t.Errorf("Value = %q, want %q", resp.Value, "1")
	}
	if len(resp.Params) != 2 || resp.Params[0] != 1 || resp.Params[1] != 2 {
		t.Errorf("Params = %v, want [1 2]", resp.Params)
	}
}

func TestCorrelatorOldestWins(t *testing.T) {
	c := NewCorrelator()
	first := DeviceAttributes()
	second := DeviceAttributes()
	c.Expect(first)
	c.Expect(second)

	if !c.Match("\x1b[?62c") {
		t.Fatal("Match() = false")
	}
	if !first.Completed() {
		t.Error("oldest request not completed")
	}
	if second.Completed() {
		t.Error("newer request completed first")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCorrelatorMatchesByValue(t *testing.T) {
	c := NewCorrelator()
	size := TextAreaSize()
	pixels := NewRequest(CSI+"14t", "t")
	pixels.Value = "4"
	c.Expect(size)
	c.Expect(pixels)

	if !c.Match("\x1b[4;600;800t") {
		t.Fatal("pixel reply not matched")
	}
	if size.Completed() {
		t.Error("size request completed by a pixel reply")
	}
	resp, _ := pixels.Response()
	if resp.Param(1, 0) != 600 || resp.Param(2, 0) != 800 {
		t.Errorf("Params = %v", resp.Params)
	}

	if !c.Match("\x1b[8;24;80t") {
		t.Fatal("size reply not matched")
	}
	resp, _ = size.Response()
	if resp.Param(1, 0) != 24 || resp.Param(2, 0) != 80 {
		t.Errorf("Params = %v", resp.Params)
	}
}

func TestCorrelatorUnmatchedPassesThrough(t *testing.T) {
	c := NewCorrelator()
	req := DeviceAttributes()
	c.Expect(req)

	p := NewParser[rec](c)
	got := chunkStrings(p.Process(tokens("\x1b[1;5A")))
	if !equalStrings(got, []string{"\x1b[1;5A"}) {
		t.Errorf("Process = %q, want key sequence", got)
	}
	if req.Completed() {
		t.Error("request completed by unrelated input")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCorrelatorAbandon(t *testing.T) {
	c := NewCorrelator()
	req := CursorPosition()
	var calls int
	req.OnResponse = func(Response) { calls++ }
	c.Expect(req)

	if !c.Abandon(req) {
		t.Fatal("Abandon() = false for outstanding request")
	}
	if c.Abandon(req) {
		t.Error("Abandon() = true for removed request")
	}

	resp, ok := req.Response()
	if !ok {
		t.Fatal("abandoned request not completed")
	}
	if !resp.Abandoned() || resp.OK() {
		t.Errorf("response = %+v, want abandoned", resp)
	}
	if !errors.Is(resp.Err, ErrNoResponse) || errors.Is(resp.Err, ErrMalformedResponse) {
		t.Errorf("Err = %v, want ErrNoResponse only", resp.Err)
	}

	// A late reply is not claimed and does not complete the request again.
	if c.Match("\x1b[3;7R") {
		t.Error("late reply matched an abandoned request")
	}
	if calls != 1 {
		t.Errorf("OnResponse called %d times, want 1", calls)
	}
}

func TestCorrelatorAbandonAll(t *testing.T) {
	c := NewCorrelator()
	reqs := []*Request{DeviceAttributes(), CursorPosition(), TextAreaSize()}
	for _, r := range reqs {
		c.Expect(r)
	}
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}

	if n := c.AbandonAll(); n != 3 {
		t.Errorf("AbandonAll() = %d, want 3", n)
	}
	for _, r := range reqs {
		resp, ok := r.Response()
		if !ok || !resp.Abandoned() {
			t.Errorf("request %s = %+v, want abandoned", r.ID, resp)
		}
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after AbandonAll", c.Len())
	}
}

func TestCorrelatorExpectTwiceRegistersOnce(t *testing.T) {
	c := NewCorrelator()
	req := DeviceAttributes()
	c.Expect(req)
	c.Expect(req)
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if out := c.Outstanding(); len(out) != 1 || out[0] != req {
		t.Errorf("Outstanding() = %v", out)
	}
}

func TestCorrelatorElapsed(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := base
	c := &Correlator{now: func() time.Time { return now }}

	req := DeviceAttributes()
	c.Expect(req)
	now = base.Add(30 * time.Millisecond)
	c.Match("\x1b[?1c")

	resp, _ := req.Response()
	if resp.Elapsed != 30*time.Millisecond {
		t.Errorf("Elapsed = %v, want 30ms", resp.Elapsed)
	}
}

func TestZeroCorrelator(t *testing.T) {
	var c Correlator
	req := DeviceAttributes()
	c.Expect(req)
	if !c.Match("\x1b[?1c") {
		t.Error("zero Correlator did not match")
	}
}

func TestCorrelatorMatchMalformedParameter(t *testing.T) {
	c := NewCorrelator()
	req := DeviceAttributes()
	c.Expect(req)

	// Colon sub-parameters frame correctly but do not parse as numbers.
	p := NewParser[rec](c)
	if got := p.Process(tokens("\x1b[?1:2c")); len(got) != 0 {
		t.Fatalf("reply leaked through the parser: %q", chunkStrings(got))
	}

	resp, ok := req.Response()
	if !ok {
		t.Fatal("request not completed")
	}
	if !errors.Is(resp.Err, ErrMalformedResponse) || resp.Abandoned() {
		t.Errorf("Err = %v, want ErrMalformedResponse", resp.Err)
	}
	if resp.Raw != "\x1b[?1:2c" {
		t.Errorf("Raw = %q", resp.Raw)
	}
}
