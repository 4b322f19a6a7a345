//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package driver

import (
	"os"

	"golang.org/x/sys/unix"
)

// savedMode is the termios captured by Init.
type savedMode = unix.Termios

func getMode(in, _ *os.File) (*savedMode, error) {
	return unix.IoctlGetTermios(int(in.Fd()), ioctlGetTermios)
}

// setRawMode applies the cfmakeraw flags to a copy of saved.
func setRawMode(in, _ *os.File, saved *savedMode) error {
	raw := *saved
	raw.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP |
		unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	raw.Cflag &^= unix.CSIZE | unix.PARENB
	raw.Cflag |= unix.CS8
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	return unix.IoctlSetTermios(int(in.Fd()), ioctlSetTermios, &raw)
}

func restoreMode(in, _ *os.File, saved *savedMode) error {
	return unix.IoctlSetTermios(int(in.Fd()), ioctlSetTermios, saved)
}

func windowSize(in, out *os.File) (int, int, error) {
	ws, err := unix.IoctlGetWinsize(int(out.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		ws, err = unix.IoctlGetWinsize(int(in.Fd()), unix.TIOCGWINSZ)
		if err != nil {
			return 0, 0, err
		}
	}
	return int(ws.Col), int(ws.Row), nil
}
