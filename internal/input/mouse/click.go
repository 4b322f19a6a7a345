package mouse

import "time"

// Click detection defaults.
const (
	DefaultClickWindow    = 500 * time.Millisecond
	DefaultClickTolerance = 1
)

// clickState tracks one button.
type clickState struct {
	down    bool
	downAt  time.Time
	downPos Position

	// pending is set after a single click that may still become a double.
	pending     bool
	lastRelease time.Time
	lastPos     Position
}

// Interpreter synthesizes click and double-click events from raw
// press/release reports.
//
// Timing is judged from event timestamps as events arrive; nothing runs in
// the background. An Interpreter is not safe for concurrent use and is
// meant to be driven from a single goroutine.
type Interpreter struct {
	window    time.Duration
	tolerance int
	state     [len(buttons)]clickState
}

// NewInterpreter creates an interpreter. A non-positive window selects
// DefaultClickWindow and a negative tolerance selects DefaultClickTolerance.
func NewInterpreter(window time.Duration, tolerance int) *Interpreter {
	if window <= 0 {
		window = DefaultClickWindow
	}
	if tolerance < 0 {
		tolerance = DefaultClickTolerance
	}
	return &Interpreter{window: window, tolerance: tolerance}
}

// Window returns the click window.
func (in *Interpreter) Window() time.Duration {
	return in.window
}

// Tolerance returns the position tolerance in cells.
func (in *Interpreter) Tolerance() int {
	return in.tolerance
}

// Process returns ev followed by a synthesized click or double-click
// event when ev completes one.
func (in *Interpreter) Process(ev Event) []Event {
	out := []Event{ev}

	ts := ev.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	for i, bf := range buttons {
		st := &in.state[i]
		switch {
		case ev.Flags.Has(bf.pressed) && !ev.IsMotion():
			in.press(st, ev.Position, ts)
		case ev.Flags.Has(bf.released):
			if synth, ok := in.release(st, bf, ev.Position, ts); ok {
				out = append(out, Event{
					Position:  ev.Position,
					Flags:     synth | ev.Flags.Modifiers(),
					Timestamp: ev.Timestamp,
				})
			}
		}
	}
	return out
}

func (in *Interpreter) press(st *clickState, pos Position, ts time.Time) {
	if st.pending && !in.within(st.lastRelease, ts) {
		st.pending = false
	}
	if st.down {
		return
	}
	st.down = true
	st.downAt = ts
	st.downPos = pos
}

func (in *Interpreter) release(st *clickState, bf buttonFlags, pos Position, ts time.Time) (Flags, bool) {
	if !st.down {
		return FlagNone, false
	}
	st.down = false

	if !in.within(st.downAt, ts) || pos.Distance(st.downPos) > in.tolerance {
		st.pending = false
		return FlagNone, false
	}

	if st.pending && in.within(st.lastRelease, ts) && pos.Distance(st.lastPos) <= in.tolerance {
		st.pending = false
		return bf.doubleClicked, true
	}

	st.pending = true
	st.lastRelease = ts
	st.lastPos = pos
	return bf.clicked, true
}

// within reports whether ts falls within the window after from.
// A timestamp earlier than from never qualifies.
func (in *Interpreter) within(from, ts time.Time) bool {
	elapsed := ts.Sub(from)
	return elapsed >= 0 && elapsed <= in.window
}

// Reset clears all per-button state.
func (in *Interpreter) Reset() {
	in.state = [len(buttons)]clickState{}
}
