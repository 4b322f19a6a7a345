package driver

import (
	"errors"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/conio/internal/ansi"
)

// VT drives a terminal through a tcell.Tty.
type VT struct {
	opts Options
	tty  tcell.Tty

	mu       sync.Mutex
	started  bool
	disposed bool
	canceled atomic.Bool

	// dec and buf are only touched by the reading goroutine.
	dec runeDecoder
	buf [256]byte
}

// NewVT creates a VT driver for tty. A nil tty selects the controlling
// terminal of the process.
func NewVT(tty tcell.Tty, opts Options) (*VT, error) {
	if tty == nil {
		var err error
		tty, err = defaultTty()
		if err != nil {
			return nil, newError(KindVT, "open tty", err)
		}
	}
	return &VT{opts: opts, tty: tty}, nil
}

// Name returns "vt".
func (v *VT) Name() string {
	return KindVT
}

// Init puts the tty into raw mode and enables mouse reporting.
func (v *VT) Init() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.disposed {
		return newError(KindVT, "init", ErrClosed)
	}
	if v.started {
		return nil
	}
	if err := v.tty.Start(); err != nil {
		return newError(KindVT, "start", err)
	}
	v.started = true

	if v.opts.Mouse {
		if _, err := io.WriteString(v.tty, mouseEnable); err != nil {
			return newError(KindVT, "enable mouse", err)
		}
	}
	return nil
}

// Read blocks until input arrives or Cancel is called.
func (v *VT) Read() ([]ansi.Token[Record], error) {
	for {
		if v.canceled.Load() {
			return nil, ErrCanceled
		}
		n, err := v.tty.Read(v.buf[:])
		if n > 0 {
			return v.dec.decode(v.buf[:n], time.Now()), nil
		}
		if v.canceled.Load() {
			return nil, ErrCanceled
		}
		if errors.Is(err, os.ErrDeadlineExceeded) {
			continue
		}
		if err != nil {
			return nil, err
		}
	}
}

// Write sends p to the tty.
func (v *VT) Write(p []byte) (int, error) {
	return v.tty.Write(p)
}

// Size returns the window size in cells.
func (v *VT) Size() (int, int, error) {
	ws, err := v.tty.WindowSize()
	if err != nil {
		return 0, 0, newError(KindVT, "size", err)
	}
	return ws.Width, ws.Height, nil
}

// SetCursorPosition moves the cursor with a CUP sequence.
func (v *VT) SetCursorPosition(col, row int) error {
	seq, err := cursorPosition(col, row)
	if err != nil {
		return err
	}
	_, err = io.WriteString(v.tty, seq)
	return err
}

// Cancel unblocks a pending Read by draining the tty.
func (v *VT) Cancel() error {
	v.canceled.Store(true)
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.started || v.disposed {
		return nil
	}
	return v.tty.Drain()
}

// Dispose disables mouse reporting, restores the tty mode and closes it.
// The tty is closed even when restoring fails. Only the first call has
// any effect.
func (v *VT) Dispose() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.disposed {
		return nil
	}
	v.disposed = true

	var errs []error
	if v.started {
		if v.opts.Mouse {
			if _, err := io.WriteString(v.tty, mouseDisable); err != nil {
				errs = append(errs, err)
			}
		}
		if err := v.tty.Stop(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := v.tty.Close(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return newError(KindVT, "dispose", errors.Join(errs...))
	}
	return nil
}
