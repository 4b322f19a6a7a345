package key

import (
	"testing"
	"time"
)

func TestFromRune(t *testing.T) {
	tests := []struct {
		name string
		r    rune
		want Event
	}{
		{"cr", '\r', Event{Key: KeyEnter}},
		{"lf", '\n', Event{Key: KeyEnter}},
		{"tab", '\t', Event{Key: KeyTab}},
		{"ctrl h", 0x08, Event{Key: KeyBackspace}},
		{"del", 0x7f, Event{Key: KeyBackspace}},
		{"esc", 0x1b, Event{Key: KeyEscape}},
		{"nul", 0x00, Event{Key: KeyRune, Rune: ' ', Modifiers: ModCtrl}},
		{"ctrl a", 0x01, Event{Key: KeyRune, Rune: 'a', Modifiers: ModCtrl}},
		{"ctrl c", 0x03, Event{Key: KeyRune, Rune: 'c', Modifiers: ModCtrl}},
		{"ctrl z", 0x1a, Event{Key: KeyRune, Rune: 'z', Modifiers: ModCtrl}},
		{"ctrl backslash", 0x1c, Event{Key: KeyRune, Rune: '\\', Modifiers: ModCtrl}},
		{"ctrl bracket", 0x1d, Event{Key: KeyRune, Rune: ']', Modifiers: ModCtrl}},
		{"ctrl caret", 0x1e, Event{Key: KeyRune, Rune: '^', Modifiers: ModCtrl}},
		{"ctrl underscore", 0x1f, Event{Key: KeyRune, Rune: '_', Modifiers: ModCtrl}},
		{"space", ' ', Event{Key: KeyRune, Rune: ' '}},
		{"letter", 'q', Event{Key: KeyRune, Rune: 'q'}},
		{"upper", 'Q', Event{Key: KeyRune, Rune: 'Q'}},
		{"unicode", 'ж', Event{Key: KeyRune, Rune: 'ж'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromRune(tt.r)
			if !got.Equals(tt.want) {
				t.Errorf("FromRune(%q) = %#v, want %#v", tt.r, got, tt.want)
			}
			if got.Timestamp.IsZero() {
				t.Errorf("FromRune(%q) left Timestamp unset", tt.r)
			}
		})
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{FromRune('x'), "x"},
		{FromRune(0x03), "C-c"},
		{FromRune(0x00), "C-Space"},
		{FromRune(' '), "Space"},
		{FromRune(0x1b), "Esc"},
		{FromRune(0x7f), "BS"},
		{NewRuneEvent('X', ModShift), "X"},
		{NewRuneEvent('x', ModAlt|ModCtrl), "C-A-x"},
		{NewRuneEvent('x', ModMeta), "M-x"},
		{NewSpecialEvent(KeyUp, ModShift), "S-Up"},
		{NewSpecialEvent(KeyUp, FromXterm(16)), "C-A-M-S-Up"},
		{NewSpecialEvent(KeyDelete, ModCtrl), "C-Del"},
		{NewSpecialEvent(KeyInsert, ModNone), "Ins"},
		{NewSpecialEvent(KeyPageUp, ModNone), "PgUp"},
		{NewSpecialEvent(KeyPageDown, ModAlt), "A-PgDn"},
		{NewSpecialEvent(KeyF7, ModNone), "F7"},
		{NewSpecialEvent(KeyEnter, ModNone), "Enter"},
	}

	for _, tt := range tests {
		if got := tt.event.String(); got != tt.want {
			t.Errorf("%#v.String() = %q, want %q", tt.event, got, tt.want)
		}
	}
}

func TestEventClassification(t *testing.T) {
	tests := []struct {
		name     string
		event    Event
		rune     bool
		char     bool
		modified bool
	}{
		{"letter", FromRune('a'), true, true, false},
		{"shifted letter", NewRuneEvent('A', ModShift), true, true, false},
		{"space", FromRune(' '), true, true, false},
		{"ctrl letter", FromRune(0x03), true, true, true},
		{"alt letter", NewRuneEvent('x', ModAlt), true, true, true},
		{"unprintable rune", NewRuneEvent(0x85, ModNone), true, false, false},
		{"zero rune", Event{Key: KeyRune}, false, false, false},
		{"enter", FromRune('\r'), false, false, false},
		{"shift tab", NewSpecialEvent(KeyTab, ModShift), false, false, true},
		{"ctrl up", NewSpecialEvent(KeyUp, ModCtrl), false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.IsRune(); got != tt.rune {
				t.Errorf("IsRune() = %v, want %v", got, tt.rune)
			}
			if got := tt.event.IsChar(); got != tt.char {
				t.Errorf("IsChar() = %v, want %v", got, tt.char)
			}
			if got := tt.event.IsModified(); got != tt.modified {
				t.Errorf("IsModified() = %v, want %v", got, tt.modified)
			}
		})
	}
}

func TestEventEqualsIgnoresTimestamp(t *testing.T) {
	a := NewRuneEvent('a', ModCtrl)
	b := a
	b.Timestamp = a.Timestamp.Add(time.Hour)
	if !a.Equals(b) {
		t.Errorf("%#v should equal %#v", a, b)
	}

	for _, other := range []Event{
		NewRuneEvent('b', ModCtrl),
		NewRuneEvent('a', ModAlt),
		NewSpecialEvent(KeyEnter, ModCtrl),
	} {
		if a.Equals(other) {
			t.Errorf("%#v should not equal %#v", a, other)
		}
	}
}

func TestEventGoString(t *testing.T) {
	got := NewSpecialEvent(KeyLeft, ModCtrl|ModShift).GoString()
	want := `Event{Key: Left, Rune: '\x00', Modifiers: Ctrl+Shift}`
	if got != want {
		t.Errorf("GoString() = %s, want %s", got, want)
	}
}
