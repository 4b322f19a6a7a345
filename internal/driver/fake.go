package driver

import (
	"bytes"
	"strings"
	"sync"
	"time"

	"github.com/dshills/conio/internal/ansi"
)

// Simulated terminal mode bits of the fake driver.
const (
	FakeModeCooked uint32 = 0x0001
	FakeModeEcho   uint32 = 0x0002
	FakeModeRaw    uint32 = 0x0100
	FakeModeMouse  uint32 = 0x0200
)

// responder maps written request text to a reply fed back as input.
type responder struct {
	request string
	reply   string
}

// Fake is an in-memory driver. Input is scripted with Feed and output is
// captured for inspection. It is safe for concurrent use.
type Fake struct {
	mu     sync.Mutex
	input  []byte
	signal chan struct{}
	output bytes.Buffer

	width, height int
	col, row      int

	mode       uint32
	saved      uint32
	initErr    error
	started    bool
	canceled   bool
	disposed   bool
	disposals  int
	responders []responder

	dec runeDecoder
}

// NewFake creates a fake terminal of the given size in cooked mode.
func NewFake(width, height int) *Fake {
	return &Fake{
		signal: make(chan struct{}, 1),
		width:  width,
		height: height,
		mode:   FakeModeCooked | FakeModeEcho,
	}
}

// Name returns "fake".
func (f *Fake) Name() string {
	return KindFake
}

// FailInit makes the next Init return err after saving the mode.
func (f *Fake) FailInit(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.initErr = err
}

// Init saves the simulated mode and switches to raw mode.
func (f *Fake) Init() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.disposed {
		return newError(KindFake, "init", ErrClosed)
	}
	if f.started {
		return nil
	}
	f.saved = f.mode
	f.started = true
	if f.initErr != nil {
		return newError(KindFake, "set raw mode", f.initErr)
	}
	f.mode = (f.mode &^ (FakeModeCooked | FakeModeEcho)) | FakeModeRaw | FakeModeMouse
	return nil
}

// Read blocks until input is fed or Cancel is called.
func (f *Fake) Read() ([]ansi.Token[Record], error) {
	for {
		f.mu.Lock()
		switch {
		case f.canceled:
			f.mu.Unlock()
			return nil, ErrCanceled
		case len(f.input) > 0:
			data := f.input
			f.input = nil
			toks := f.dec.decode(data, time.Now())
			f.mu.Unlock()
			if len(toks) == 0 {
				continue
			}
			return toks, nil
		}
		f.mu.Unlock()
		<-f.signal
	}
}

// Feed queues raw input bytes.
func (f *Fake) Feed(p []byte) {
	f.mu.Lock()
	f.input = append(f.input, p...)
	f.mu.Unlock()
	f.notify()
}

// FeedString queues s as input.
func (f *Fake) FeedString(s string) {
	f.Feed([]byte(s))
}

func (f *Fake) notify() {
	select {
	case f.signal <- struct{}{}:
	default:
	}
}

// Respond registers reply to be fed as input whenever written output
// contains request.
func (f *Fake) Respond(request, reply string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responders = append(f.responders, responder{request: request, reply: reply})
}

// Write captures p and triggers any matching responders.
func (f *Fake) Write(p []byte) (int, error) {
	f.mu.Lock()
	if f.disposed {
		f.mu.Unlock()
		return 0, ErrClosed
	}
	f.output.Write(p)
	var replies []string
	for _, r := range f.responders {
		if strings.Contains(string(p), r.request) {
			replies = append(replies, r.reply)
		}
	}
	f.mu.Unlock()

	for _, reply := range replies {
		f.FeedString(reply)
	}
	return len(p), nil
}

// Output returns everything written so far.
func (f *Fake) Output() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.output.String()
}

// ResetOutput discards the captured output.
func (f *Fake) ResetOutput() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.output.Reset()
}

// SetSize changes the reported size.
func (f *Fake) SetSize(width, height int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.width, f.height = width, height
}

// Size returns the configured size.
func (f *Fake) Size() (int, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.width, f.height, nil
}

// SetCursorPosition records the position and writes a CUP sequence.
func (f *Fake) SetCursorPosition(col, row int) error {
	seq, err := cursorPosition(col, row)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.col, f.row = col, row
	f.mu.Unlock()
	_, err = f.Write([]byte(seq))
	return err
}

// CursorPosition returns the last position set.
func (f *Fake) CursorPosition() (col, row int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.col, f.row
}

// Mode returns the simulated terminal mode word.
func (f *Fake) Mode() uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode
}

// SetMode sets the simulated mode word, as if changed outside the driver.
func (f *Fake) SetMode(mode uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mode = mode
}

// Cancel unblocks a pending Read. Later reads return ErrCanceled.
func (f *Fake) Cancel() error {
	f.mu.Lock()
	f.canceled = true
	f.mu.Unlock()
	f.notify()
	return nil
}

// Dispose restores the saved mode. Only the first call has any effect.
func (f *Fake) Dispose() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.disposals++
	if f.disposed {
		return nil
	}
	f.disposed = true
	if f.started {
		f.mode = f.saved
	}
	return nil
}

// Disposals returns how many times Dispose was called.
func (f *Fake) Disposals() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.disposals
}
