package console

import (
	"context"
	"testing"
	"time"

	"github.com/dshills/conio/internal/ansi"
)

func TestMetricsPeakReplyLatency(t *testing.T) {
	var m metrics
	m.recordReply(5 * time.Millisecond)
	m.recordReply(2 * time.Millisecond)
	m.recordReply(9 * time.Millisecond)

	s := m.snapshot(time.Now())
	if s.RepliesMatched != 3 {
		t.Errorf("RepliesMatched = %d, expected 3", s.RepliesMatched)
	}
	if s.PeakReplyLatency != 9*time.Millisecond {
		t.Errorf("PeakReplyLatency = %s, expected 9ms", s.PeakReplyLatency)
	}
	if s.Uptime != 0 {
		t.Errorf("Uptime = %s before start", s.Uptime)
	}
}

func TestMetricsUptime(t *testing.T) {
	var m metrics
	now := time.Now()
	m.start(now)
	if got := m.snapshot(now.Add(time.Second)).Uptime; got != time.Second {
		t.Errorf("Uptime = %s, expected 1s", got)
	}
}

func TestLoopStats(t *testing.T) {
	h := newHarness(t, WithRequestTimeout(20*time.Millisecond))
	h.start()

	h.fake.FeedString("a\x1b[99z\x1b[<0;1;1M")
	h.waitKeys(1)
	h.waitMouse(1)

	req := ansi.DeviceAttributes()
	h.fake.Respond(req.Text, "\x1b[?1c")
	if _, err := h.loop.Send(context.Background(), req); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	_, _ = h.loop.Send(context.Background(), ansi.CursorPosition())

	if err := h.loop.Stop(); err != nil {
		t.Fatal(err)
	}
	s := h.loop.Stats()
	if s.KeyEvents != 1 || s.MouseEvents != 1 {
		t.Errorf("events = %d keys, %d mouse", s.KeyEvents, s.MouseEvents)
	}
	if s.DroppedSequences != 1 {
		t.Errorf("DroppedSequences = %d, expected 1", s.DroppedSequences)
	}
	if s.RepliesMatched != 1 || s.RequestsAbandoned != 1 {
		t.Errorf("requests = %d matched, %d abandoned", s.RepliesMatched, s.RequestsAbandoned)
	}
	if s.Tokens == 0 || s.Uptime <= 0 {
		t.Errorf("stats = %+v", s)
	}
}
