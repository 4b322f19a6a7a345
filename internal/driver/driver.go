package driver

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	xansi "github.com/charmbracelet/x/ansi"
	"golang.org/x/term"

	"github.com/dshills/conio/internal/ansi"
)

// Driver owns a terminal connection.
type Driver interface {
	// Name returns the driver kind.
	Name() string

	// Init saves the current terminal mode and switches to raw input.
	Init() error

	// Read blocks until input is available and returns it as tokens.
	// After Cancel it returns ErrCanceled.
	Read() ([]ansi.Token[Record], error)

	// Write sends raw bytes to the terminal.
	Write(p []byte) (int, error)

	// Size returns the terminal size in cells.
	Size() (width, height int, err error)

	// SetCursorPosition moves the cursor to the 0-based cell (col, row).
	SetCursorPosition(col, row int) error

	// Cancel unblocks a pending Read.
	Cancel() error

	// Dispose restores the saved mode and releases OS resources. It may
	// be called after a failed Init and more than once.
	Dispose() error
}

// Record is the payload carried by every input token.
type Record struct {
	// Time is when the read that produced the rune returned.
	Time time.Time

	// Width is the number of bytes the rune occupied on the wire.
	Width int
}

// Driver kinds accepted by New.
const (
	KindAuto   = "auto"
	KindVT     = "vt"
	KindLegacy = "legacy"
	KindFake   = "fake"
)

// Options configures a driver.
type Options struct {
	// Mouse enables SGR mouse reporting between Init and Dispose.
	Mouse bool
}

// Mouse reporting sequences: button and any-event tracking with SGR
// (1006) encoding.
var (
	mouseEnable = xansi.SetButtonEventMouseMode +
		xansi.SetAnyEventMouseMode +
		xansi.SetSgrExtMouseMode
	mouseDisable = xansi.ResetSgrExtMouseMode +
		xansi.ResetAnyEventMouseMode +
		xansi.ResetButtonEventMouseMode
)

// cursorPosition returns the CUP sequence for the 0-based cell (col, row).
func cursorPosition(col, row int) (string, error) {
	if col < 0 || row < 0 {
		return "", fmt.Errorf("invalid cursor position (%d,%d)", col, row)
	}
	return xansi.CursorPosition(col+1, row+1), nil
}

// New creates a driver of the given kind. KindAuto selects VT when stdin
// is a terminal on a platform that supports it, and Legacy otherwise.
func New(kind string, opts Options) (Driver, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindAuto, "":
		if runtime.GOOS != "windows" && term.IsTerminal(int(os.Stdin.Fd())) {
			return NewVT(nil, opts)
		}
		return NewLegacy(os.Stdin, os.Stdout, opts), nil
	case KindVT:
		return NewVT(nil, opts)
	case KindLegacy:
		return NewLegacy(os.Stdin, os.Stdout, opts), nil
	case KindFake:
		return NewFake(80, 24), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}
