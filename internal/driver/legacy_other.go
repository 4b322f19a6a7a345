//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly || windows)

package driver

import "os"

type savedMode struct{}

func getMode(_, _ *os.File) (*savedMode, error) {
	return nil, ErrUnsupported
}

func setRawMode(_, _ *os.File, _ *savedMode) error {
	return ErrUnsupported
}

func restoreMode(_, _ *os.File, _ *savedMode) error {
	return ErrUnsupported
}

func windowSize(_, _ *os.File) (int, int, error) {
	return 0, 0, ErrUnsupported
}
