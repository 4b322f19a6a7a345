//go:build !(aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris || zos)

package driver

import "github.com/gdamore/tcell/v2"

func defaultTty() (tcell.Tty, error) {
	return nil, ErrUnsupported
}
