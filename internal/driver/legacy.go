package driver

import (
	"errors"
	"os"
	"sync"
	"time"

	"github.com/muesli/cancelreader"
	"golang.org/x/term"

	"github.com/dshills/conio/internal/ansi"
)

// Legacy drives the terminal through direct OS handle calls.
type Legacy struct {
	opts Options
	in   *os.File
	out  *os.File

	mu       sync.Mutex
	saved    *savedMode
	cr       cancelreader.CancelReader
	disposed bool

	// dec and buf are only touched by the reading goroutine.
	dec runeDecoder
	buf [256]byte
}

// NewLegacy creates a legacy driver for the given input and output files.
func NewLegacy(in, out *os.File, opts Options) *Legacy {
	return &Legacy{opts: opts, in: in, out: out}
}

// Name returns "legacy".
func (l *Legacy) Name() string {
	return KindLegacy
}

// Init saves the input mode, switches to raw mode and starts the
// cancelable reader.
func (l *Legacy) Init() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.disposed {
		return newError(KindLegacy, "init", ErrClosed)
	}
	if l.saved != nil {
		return nil
	}
	if !term.IsTerminal(int(l.in.Fd())) {
		return newError(KindLegacy, "init", ErrNotTerminal)
	}

	saved, err := getMode(l.in, l.out)
	if err != nil {
		return newError(KindLegacy, "get mode", err)
	}
	l.saved = saved

	if err := setRawMode(l.in, l.out, saved); err != nil {
		return newError(KindLegacy, "set raw mode", err)
	}

	cr, err := cancelreader.NewReader(l.in)
	if err != nil {
		return newError(KindLegacy, "open reader", err)
	}
	l.cr = cr

	if l.opts.Mouse {
		if _, err := l.out.WriteString(mouseEnable); err != nil {
			return newError(KindLegacy, "enable mouse", err)
		}
	}
	return nil
}

// Read blocks until input arrives or Cancel is called.
func (l *Legacy) Read() ([]ansi.Token[Record], error) {
	l.mu.Lock()
	cr := l.cr
	l.mu.Unlock()
	if cr == nil {
		return nil, ErrClosed
	}

	for {
		n, err := cr.Read(l.buf[:])
		if n > 0 {
			return l.dec.decode(l.buf[:n], time.Now()), nil
		}
		if errors.Is(err, cancelreader.ErrCanceled) {
			return nil, ErrCanceled
		}
		if err != nil {
			return nil, err
		}
	}
}

// Write sends p to the output handle.
func (l *Legacy) Write(p []byte) (int, error) {
	return l.out.Write(p)
}

// Size returns the window size in cells.
func (l *Legacy) Size() (int, int, error) {
	w, h, err := windowSize(l.in, l.out)
	if err != nil {
		return 0, 0, newError(KindLegacy, "size", err)
	}
	return w, h, nil
}

// SetCursorPosition moves the cursor with a CUP sequence.
func (l *Legacy) SetCursorPosition(col, row int) error {
	seq, err := cursorPosition(col, row)
	if err != nil {
		return err
	}
	_, err = l.out.WriteString(seq)
	return err
}

// Cancel unblocks a pending Read.
func (l *Legacy) Cancel() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cr != nil {
		l.cr.Cancel()
	}
	return nil
}

// Dispose restores the saved mode. Only the first call has any effect.
func (l *Legacy) Dispose() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.disposed {
		return nil
	}
	l.disposed = true

	var errs []error
	if l.saved != nil && l.opts.Mouse {
		if _, err := l.out.WriteString(mouseDisable); err != nil {
			errs = append(errs, err)
		}
	}
	if l.cr != nil {
		l.cr.Cancel()
		if err := l.cr.Close(); err != nil {
			errs = append(errs, err)
		}
		l.cr = nil
	}
	if l.saved != nil {
		if err := restoreMode(l.in, l.out, l.saved); err != nil {
			return newError(KindLegacy, "restore mode", err)
		}
	}
	if len(errs) > 0 {
		return newError(KindLegacy, "dispose", errors.Join(errs...))
	}
	return nil
}
