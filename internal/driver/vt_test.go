package driver

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

// stubTty is an in-memory tcell.Tty.
type stubTty struct {
	input   []byte
	output  bytes.Buffer
	size    tcell.WindowSize
	started bool
	stopErr error
	drained int
	stops   int
	closes  int
}

func (s *stubTty) Start() error {
	s.started = true
	return nil
}

func (s *stubTty) Stop() error {
	s.stops++
	s.started = false
	return s.stopErr
}

func (s *stubTty) Drain() error {
	s.drained++
	return nil
}

func (s *stubTty) NotifyResize(func()) {}

func (s *stubTty) WindowSize() (tcell.WindowSize, error) {
	return s.size, nil
}

func (s *stubTty) Read(p []byte) (int, error) {
	if len(s.input) == 0 {
		return 0, os.ErrDeadlineExceeded
	}
	n := copy(p, s.input)
	s.input = s.input[n:]
	return n, nil
}

func (s *stubTty) Write(p []byte) (int, error) {
	return s.output.Write(p)
}

func (s *stubTty) Close() error {
	s.closes++
	return nil
}

func TestVTInitReadDispose(t *testing.T) {
	tty := &stubTty{input: []byte("a\x1b[A"), size: tcell.WindowSize{Width: 100, Height: 30}}
	v, err := NewVT(tty, Options{Mouse: true})
	if err != nil {
		t.Fatalf("NewVT() error = %v", err)
	}

	if err := v.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if !tty.started || !strings.Contains(tty.output.String(), mouseEnable) {
		t.Errorf("Init did not start the tty and enable mouse: %q", tty.output.String())
	}

	if got := readString(t, v); got != "a\x1b[A" {
		t.Errorf("Read() = %q", got)
	}

	w, h, err := v.Size()
	if err != nil || w != 100 || h != 30 {
		t.Errorf("Size() = %d, %d, %v", w, h, err)
	}

	if err := v.Dispose(); err != nil {
		t.Fatalf("Dispose() error = %v", err)
	}
	if err := v.Dispose(); err != nil {
		t.Fatalf("second Dispose() error = %v", err)
	}
	if tty.stops != 1 || tty.closes != 1 {
		t.Errorf("stops = %d, closes = %d, expected 1 each", tty.stops, tty.closes)
	}
	if !strings.HasSuffix(tty.output.String(), mouseDisable) {
		t.Errorf("mouse not disabled: %q", tty.output.String())
	}
}

func TestVTDisposeClosesWhenStopFails(t *testing.T) {
	stopErr := errors.New("tcsetattr failed")
	tty := &stubTty{stopErr: stopErr}
	v, err := NewVT(tty, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := v.Init(); err != nil {
		t.Fatal(err)
	}

	err = v.Dispose()
	if !errors.Is(err, stopErr) {
		t.Fatalf("Dispose() = %v, expected wrapped stop error", err)
	}
	if tty.closes != 1 {
		t.Errorf("closes = %d, tty leaked after failed Stop", tty.closes)
	}
}

func TestVTCancel(t *testing.T) {
	tty := &stubTty{}
	v, err := NewVT(tty, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := v.Init(); err != nil {
		t.Fatal(err)
	}
	if err := v.Cancel(); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if tty.drained != 1 {
		t.Errorf("drained = %d, expected 1", tty.drained)
	}
	if _, err := v.Read(); !errors.Is(err, ErrCanceled) {
		t.Errorf("Read() after Cancel = %v, expected ErrCanceled", err)
	}
}
