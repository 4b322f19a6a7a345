package console

import (
	"sync/atomic"
	"time"
)

// metrics counts what the consumer did with its input. Counters are
// written by the consumer and may be read from any goroutine.
type metrics struct {
	tokens            atomic.Uint64
	keyEvents         atomic.Uint64
	mouseEvents       atomic.Uint64
	droppedSequences  atomic.Uint64
	escapeTimeouts    atomic.Uint64
	repliesMatched    atomic.Uint64
	requestsAbandoned atomic.Uint64
	handlerPanics     atomic.Uint64

	peakReplyLatency atomic.Int64
	startTime        atomic.Int64
}

func (m *metrics) start(at time.Time) {
	m.startTime.Store(at.UnixNano())
}

func (m *metrics) recordReply(elapsed time.Duration) {
	m.repliesMatched.Add(1)
	ns := elapsed.Nanoseconds()
	for {
		current := m.peakReplyLatency.Load()
		if ns <= current || m.peakReplyLatency.CompareAndSwap(current, ns) {
			return
		}
	}
}

// Stats is a point-in-time view of loop activity.
type Stats struct {
	Tokens            uint64
	KeyEvents         uint64
	MouseEvents       uint64
	DroppedSequences  uint64
	EscapeTimeouts    uint64
	RepliesMatched    uint64
	RequestsAbandoned uint64
	HandlerPanics     uint64

	// PeakReplyLatency is the longest time a matched reply took.
	PeakReplyLatency time.Duration

	// Uptime is the time since Start, or zero before Start.
	Uptime time.Duration
}

func (m *metrics) snapshot(now time.Time) Stats {
	s := Stats{
		Tokens:            m.tokens.Load(),
		KeyEvents:         m.keyEvents.Load(),
		MouseEvents:       m.mouseEvents.Load(),
		DroppedSequences:  m.droppedSequences.Load(),
		EscapeTimeouts:    m.escapeTimeouts.Load(),
		RepliesMatched:    m.repliesMatched.Load(),
		RequestsAbandoned: m.requestsAbandoned.Load(),
		HandlerPanics:     m.handlerPanics.Load(),
		PeakReplyLatency:  time.Duration(m.peakReplyLatency.Load()),
	}
	if started := m.startTime.Load(); started != 0 {
		s.Uptime = now.Sub(time.Unix(0, started))
	}
	return s
}
