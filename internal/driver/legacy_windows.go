//go:build windows

package driver

import (
	"os"

	"golang.org/x/sys/windows"
)

// savedMode holds the console modes captured by Init.
type savedMode struct {
	in  uint32
	out uint32
}

func getMode(in, out *os.File) (*savedMode, error) {
	var m savedMode
	if err := windows.GetConsoleMode(windows.Handle(in.Fd()), &m.in); err != nil {
		return nil, err
	}
	if err := windows.GetConsoleMode(windows.Handle(out.Fd()), &m.out); err != nil {
		return nil, err
	}
	return &m, nil
}

// setRawMode disables line editing and echo and turns on VT input and
// output processing.
func setRawMode(in, out *os.File, saved *savedMode) error {
	inMode := saved.in
	inMode &^= windows.ENABLE_ECHO_INPUT | windows.ENABLE_LINE_INPUT | windows.ENABLE_PROCESSED_INPUT
	inMode |= windows.ENABLE_VIRTUAL_TERMINAL_INPUT | windows.ENABLE_EXTENDED_FLAGS
	if err := windows.SetConsoleMode(windows.Handle(in.Fd()), inMode); err != nil {
		return err
	}
	outMode := saved.out | windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING | windows.ENABLE_PROCESSED_OUTPUT
	return windows.SetConsoleMode(windows.Handle(out.Fd()), outMode)
}

func restoreMode(in, out *os.File, saved *savedMode) error {
	if err := windows.SetConsoleMode(windows.Handle(in.Fd()), saved.in); err != nil {
		return err
	}
	return windows.SetConsoleMode(windows.Handle(out.Fd()), saved.out)
}

func windowSize(_, out *os.File) (int, int, error) {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(windows.Handle(out.Fd()), &info); err != nil {
		return 0, 0, err
	}
	w := int(info.Window.Right-info.Window.Left) + 1
	h := int(info.Window.Bottom-info.Window.Top) + 1
	return w, h, nil
}
