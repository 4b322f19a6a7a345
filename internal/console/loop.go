package console

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/conio/internal/ansi"
	"github.com/dshills/conio/internal/driver"
	"github.com/dshills/conio/internal/input/key"
	"github.com/dshills/conio/internal/input/mouse"
	"github.com/dshills/conio/internal/logging"
)

// State is the lifecycle state of a Loop.
type State int32

const (
	// StateCreated is the state of a new loop.
	StateCreated State = iota
	// StateRunning means the driver is initialized and input is flowing.
	StateRunning
	// StateStopping means Stop is tearing the loop down.
	StateStopping
	// StateStopped is terminal.
	StateStopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Loop connects a driver to key, mouse and response handlers.
//
// Handlers run on the consumer goroutine and must not call Stop; cancel
// the context passed to Start instead.
type Loop struct {
	drv  driver.Driver
	opts options
	log  *logging.Logger

	mu    sync.Mutex // serializes Start and Stop
	state atomic.Int32

	queue      *tokenQueue
	submit     chan *ansi.Request
	expire     chan *ansi.Request
	stopping   chan struct{} // closed when Stop begins
	readerDone chan struct{} // closed when the reader exits
	drain      chan struct{} // closed after the reader exits on Stop
	done       chan struct{} // closed when the consumer exits
	stopped    chan struct{} // closed when the loop reaches StateStopped
	group      *errgroup.Group
	stopErr    error
	metrics    metrics

	writeMu sync.Mutex

	// Owned by the consumer goroutine.
	parser   *ansi.Parser[driver.Record]
	corr     *ansi.Correlator
	keys     *key.Decoder
	clicks   *mouse.Interpreter
	inflight []*ansi.Request
}

// New creates a loop for drv.
func New(drv driver.Driver, opts ...Option) *Loop {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	corr := ansi.NewCorrelator()
	l := &Loop{
		drv:        drv,
		opts:       o,
		log:        o.logger.WithComponent("console").WithField("driver", drv.Name()),
		queue:      newTokenQueue(),
		submit:     make(chan *ansi.Request),
		expire:     make(chan *ansi.Request),
		stopping:   make(chan struct{}),
		readerDone: make(chan struct{}),
		drain:      make(chan struct{}),
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
		parser:     ansi.NewParser[driver.Record](corr),
		corr:       corr,
		keys:       key.NewDecoder(),
		clicks:     mouse.NewInterpreter(o.clickWindow, o.clickTolerance),
	}
	return l
}

// State returns the current lifecycle state.
func (l *Loop) State() State {
	return State(l.state.Load())
}

func (l *Loop) setState(s State) {
	l.state.Store(int32(s))
}

// Start initializes the driver and starts the reader and consumer
// goroutines. When ctx is canceled the loop stops itself. If the driver
// fails to initialize it is disposed and the loop ends up stopped.
func (l *Loop) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.State() {
	case StateRunning:
		return ErrAlreadyRunning
	case StateStopping, StateStopped:
		return ErrStopped
	}

	if err := l.drv.Init(); err != nil {
		if derr := l.drv.Dispose(); derr != nil {
			l.log.Warn("dispose after failed init: %v", derr)
		}
		l.setState(StateStopped)
		close(l.stopping)
		close(l.stopped)
		l.log.Error("init failed: %v", err)
		return fmt.Errorf("console: init: %w", err)
	}
	l.log.Info("driver initialized")
	l.metrics.start(time.Now())

	g, gctx := errgroup.WithContext(ctx)
	l.group = g
	l.setState(StateRunning)

	g.Go(l.read)
	g.Go(l.consume)

	go func() {
		select {
		case <-gctx.Done():
			_ = l.Stop()
		case <-l.stopping:
		}
	}()
	return nil
}

// Stop cancels the pending read, drains queued input, abandons
// outstanding requests and disposes the driver. It is idempotent; every
// call returns the same error.
func (l *Loop) Stop() error {
	l.mu.Lock()
	switch l.State() {
	case StateCreated:
		l.setState(StateStopped)
		close(l.stopping)
		close(l.stopped)
		l.mu.Unlock()
		return nil
	case StateStopping, StateStopped:
		l.mu.Unlock()
		<-l.stopped
		return l.stopErr
	}
	l.setState(StateStopping)
	close(l.stopping)
	l.mu.Unlock()

	var errs []error
	if err := l.drv.Cancel(); err != nil {
		errs = append(errs, fmt.Errorf("console: cancel read: %w", err))
	}
	<-l.readerDone
	close(l.drain)

	if err := l.group.Wait(); err != nil {
		errs = append(errs, err)
	}
	if err := l.drv.Dispose(); err != nil {
		errs = append(errs, fmt.Errorf("console: dispose: %w", err))
	}
	l.log.Info("driver disposed")

	l.stopErr = errors.Join(errs...)
	l.setState(StateStopped)
	close(l.stopped)
	return l.stopErr
}

// Stats returns counters describing the loop's activity so far.
func (l *Loop) Stats() Stats {
	return l.metrics.snapshot(time.Now())
}

// Done returns a channel closed once the loop has stopped.
func (l *Loop) Done() <-chan struct{} {
	return l.stopped
}

// Wait blocks until the loop has stopped and returns the Stop error.
func (l *Loop) Wait() error {
	<-l.stopped
	return l.stopErr
}

// Write sends text to the terminal.
func (l *Loop) Write(text string) error {
	_, err := l.WriteBytes([]byte(text))
	return err
}

// WriteBytes sends p to the terminal.
func (l *Loop) WriteBytes(p []byte) (int, error) {
	if l.State() != StateRunning {
		return 0, ErrNotRunning
	}
	return l.write(p)
}

func (l *Loop) write(p []byte) (int, error) {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	return l.drv.Write(p)
}

// Size returns the terminal size in cells.
func (l *Loop) Size() (width, height int, err error) {
	return l.drv.Size()
}

// SetCursorPosition moves the cursor to the 0-based cell (col, row).
func (l *Loop) SetCursorPosition(col, row int) error {
	if l.State() != StateRunning {
		return ErrNotRunning
	}
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	return l.drv.SetCursorPosition(col, row)
}

// Send writes req and waits for its reply. The expectation is
// registered before the request is written. When ctx is done or the
// request timeout passes first, the request is abandoned and the
// response carries ErrNoResponse. The returned error is the response
// error, or a reason the request could not be sent.
func (l *Loop) Send(ctx context.Context, req *ansi.Request) (ansi.Response, error) {
	if err := req.Validate(); err != nil {
		return ansi.Response{}, err
	}
	if req.Completed() {
		return ansi.Response{}, fmt.Errorf("%w: request %s already completed", ansi.ErrInvalidRequest, req.ID)
	}
	switch l.State() {
	case StateCreated:
		return ansi.Response{}, ErrNotRunning
	case StateStopping, StateStopped:
		return ansi.Response{}, ErrStopped
	}

	select {
	case l.submit <- req:
	case <-ctx.Done():
		return ansi.Response{}, ctx.Err()
	case <-l.done:
		return ansi.Response{}, ErrStopped
	}

	timer := time.NewTimer(l.opts.requestTimeout)
	defer timer.Stop()

	select {
	case <-req.Done():
	case <-ctx.Done():
		l.expireRequest(req)
	case <-timer.C:
		l.expireRequest(req)
	}

	// The consumer completes every registered request before it exits.
	<-req.Done()
	resp, _ := req.Response()
	return resp, resp.Err
}

func (l *Loop) expireRequest(req *ansi.Request) {
	select {
	case l.expire <- req:
	case <-l.done:
	}
}

// read runs on the reader goroutine.
func (l *Loop) read() error {
	defer close(l.readerDone)
	for {
		toks, err := l.drv.Read()
		if err != nil {
			if errors.Is(err, driver.ErrCanceled) || l.State() != StateRunning {
				return nil
			}
			l.log.Error("read failed: %v", err)
			return fmt.Errorf("console: read: %w", err)
		}
		l.queue.Push(toks)
	}
}

// consume runs on the consumer goroutine.
func (l *Loop) consume() error {
	defer close(l.done)

	escape := time.NewTimer(l.opts.escapeTimeout)
	escape.Stop()
	defer escape.Stop()
	var escapeC <-chan time.Time

	for {
		select {
		case <-l.queue.Signal():
			if toks := l.queue.Drain(); len(toks) > 0 {
				l.feed(toks)
				escapeC = l.armEscape(escape)
			}

		case req := <-l.submit:
			l.register(req)

		case req := <-l.expire:
			l.abandon(req)

		case <-escapeC:
			escapeC = nil
			if l.escapePending() {
				l.metrics.escapeTimeouts.Add(1)
				l.dispatchAll(l.parser.Release())
			}

		case <-l.drain:
			l.feed(l.queue.Drain())
			l.dispatchAll(l.parser.Release())
			if n := l.corr.AbandonAll(); n > 0 {
				l.log.Debug("abandoned %d outstanding requests", n)
			}
			l.reap()
			return nil
		}
	}
}

// escapePending reports whether the parser holds something that is a
// complete key on its own if nothing follows: a lone ESC, or ESC O.
func (l *Loop) escapePending() bool {
	switch l.parser.State() {
	case ansi.StateExpectingBracket:
		return true
	case ansi.StateInResponse:
		return l.parser.Held() == "\x1bO"
	}
	return false
}

func (l *Loop) armEscape(t *time.Timer) <-chan time.Time {
	if !l.escapePending() {
		t.Stop()
		return nil
	}
	t.Reset(l.opts.escapeTimeout)
	return t.C
}

func (l *Loop) feed(toks []ansi.Token[driver.Record]) {
	if len(toks) == 0 {
		return
	}
	l.metrics.tokens.Add(uint64(len(toks)))
	l.dispatchAll(l.parser.Process(toks))
	l.reap()
}

func (l *Loop) register(req *ansi.Request) {
	l.corr.Expect(req)
	if !l.isInflight(req) {
		l.inflight = append(l.inflight, req)
	}
	l.log.WithField("request", req.ID).Debug("sending %q", req.Text)

	if _, err := l.write([]byte(req.Text)); err != nil {
		req.Fail(fmt.Errorf("console: write request: %w", err))
		l.corr.Abandon(req)
	}
	l.reap()
}

func (l *Loop) abandon(req *ansi.Request) {
	if l.corr.Abandon(req) {
		if l.corr.Len() == 0 && l.parser.State() == ansi.StateInResponse {
			l.dispatchAll(l.parser.Release())
		}
	}
	l.reap()
}

func (l *Loop) isInflight(req *ansi.Request) bool {
	for _, r := range l.inflight {
		if r == req {
			return true
		}
	}
	return false
}

// reap delivers responses of completed requests in submission order.
func (l *Loop) reap() {
	kept := l.inflight[:0]
	for _, req := range l.inflight {
		resp, done := req.Response()
		if !done {
			kept = append(kept, req)
			continue
		}
		log := l.log.WithField("request", req.ID)
		switch {
		case resp.Abandoned():
			l.metrics.requestsAbandoned.Add(1)
			log.Debug("abandoned after %s", resp.Elapsed)
		case resp.Err != nil:
			log.Debug("failed after %s: %v", resp.Elapsed, resp.Err)
		default:
			l.metrics.recordReply(resp.Elapsed)
			log.Debug("reply %q after %s", resp.Raw, resp.Elapsed)
		}
		if h := l.opts.onResponse; h != nil {
			l.call("response", func() { h(req, resp) })
		}
	}
	clear(l.inflight[len(kept):])
	l.inflight = kept
}

func (l *Loop) dispatchAll(chunks []ansi.Chunk[driver.Record]) {
	for _, c := range chunks {
		l.dispatch(c)
	}
}

// dispatch decodes one chunk and delivers the resulting events.
func (l *Loop) dispatch(c ansi.Chunk[driver.Record]) {
	if len(c.Tokens) == 0 {
		return
	}
	at := c.Tokens[0].Payload.Time

	if !c.IsSequence() {
		for _, t := range c.Tokens {
			ev := key.FromRune(t.Char)
			stamp(&ev.Timestamp, t.Payload.Time)
			l.emitKey(ev)
		}
		return
	}

	seq := c.String()
	if mouse.IsSGR(seq) {
		ev, ok := mouse.Decode(seq)
		if !ok {
			l.metrics.droppedSequences.Add(1)
			l.log.Debug("dropped malformed mouse report %q", seq)
			return
		}
		stamp(&ev.Timestamp, at)
		for _, out := range l.clicks.Process(ev) {
			l.emitMouse(out)
		}
		return
	}

	ev, ok := l.keys.Decode(seq)
	if !ok {
		l.metrics.droppedSequences.Add(1)
		l.log.Debug("dropped undecodable sequence %q", seq)
		return
	}
	stamp(&ev.Timestamp, at)
	l.emitKey(ev)
}

func stamp(dst *time.Time, at time.Time) {
	if !at.IsZero() {
		*dst = at
	}
}

func (l *Loop) emitKey(ev key.Event) {
	l.metrics.keyEvents.Add(1)
	if h := l.opts.onKey; h != nil {
		l.call("key", func() { h(ev) })
	}
}

func (l *Loop) emitMouse(ev mouse.Event) {
	l.metrics.mouseEvents.Add(1)
	if h := l.opts.onMouse; h != nil {
		l.call("mouse", func() { h(ev) })
	}
}

// call runs a handler and logs any panic it raises.
func (l *Loop) call(handler string, fn func()) {
	defer func() {
		if v := recover(); v != nil {
			l.metrics.handlerPanics.Add(1)
			l.log.Error("%v", &HandlerPanicError{Handler: handler, Value: v})
		}
	}()
	fn()
}
