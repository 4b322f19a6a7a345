package console

import (
	"sync"

	"github.com/dshills/conio/internal/ansi"
	"github.com/dshills/conio/internal/driver"
)

// tokenQueue hands token batches from the reader to the consumer.
// Push never blocks; a one-slot signal channel wakes the consumer.
type tokenQueue struct {
	mu      sync.Mutex
	batches [][]ansi.Token[driver.Record]
	signal  chan struct{}
}

func newTokenQueue() *tokenQueue {
	return &tokenQueue{signal: make(chan struct{}, 1)}
}

// Push appends a batch and wakes the consumer.
func (q *tokenQueue) Push(toks []ansi.Token[driver.Record]) {
	if len(toks) == 0 {
		return
	}
	q.mu.Lock()
	q.batches = append(q.batches, toks)
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
}

// Drain removes and returns every queued token in arrival order.
func (q *tokenQueue) Drain() []ansi.Token[driver.Record] {
	q.mu.Lock()
	batches := q.batches
	q.batches = nil
	q.mu.Unlock()

	if len(batches) == 1 {
		return batches[0]
	}
	var n int
	for _, b := range batches {
		n += len(b)
	}
	out := make([]ansi.Token[driver.Record], 0, n)
	for _, b := range batches {
		out = append(out, b...)
	}
	return out
}

// Len returns the number of queued tokens.
func (q *tokenQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	var n int
	for _, b := range q.batches {
		n += len(b)
	}
	return n
}

// Signal returns the wake-up channel.
func (q *tokenQueue) Signal() <-chan struct{} {
	return q.signal
}
