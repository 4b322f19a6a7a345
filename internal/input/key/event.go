package key

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Event represents a single decoded key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier

	// Timestamp is when the input carrying the key was received.
	Timestamp time.Time
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{
		Key:       KeyRune,
		Rune:      r,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(key Key, mods Modifier) Event {
	return Event{
		Key:       key,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// ctrlPunct holds the characters produced with Ctrl for 0x1C-0x1F.
const ctrlPunct = `\]^_`

// FromRune maps one pass-through character to a key event.
// Control characters become their conventional keys or Ctrl combinations.
func FromRune(r rune) Event {
	switch {
	case r == '\r' || r == '\n':
		return NewSpecialEvent(KeyEnter, ModNone)
	case r == '\t':
		return NewSpecialEvent(KeyTab, ModNone)
	case r == 0x08 || r == 0x7f:
		return NewSpecialEvent(KeyBackspace, ModNone)
	case r == 0x1b:
		return NewSpecialEvent(KeyEscape, ModNone)
	case r == 0:
		return NewRuneEvent(' ', ModCtrl)
	case r >= 0x01 && r <= 0x1a:
		return NewRuneEvent('a'+r-1, ModCtrl)
	case r >= 0x1c && r <= 0x1f:
		return NewRuneEvent(rune(ctrlPunct[r-0x1c]), ModCtrl)
	}
	return NewRuneEvent(r, ModNone)
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is a printable character.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune)
}

// IsModified returns true if any modifier is pressed.
// For character events, Shift alone is not considered modified
// (since Shift changes the character itself).
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
	}
	return e.Modifiers != ModNone
}

// String returns a canonical string representation such as
// "a", "C-c", "A-x", "S-Up" or "Esc".
func (e Event) String() string {
	var parts []string
	if e.Modifiers.HasCtrl() {
		parts = append(parts, "C")
	}
	if e.Modifiers.HasAlt() {
		parts = append(parts, "A")
	}
	if e.Modifiers.HasMeta() {
		parts = append(parts, "M")
	}
	if e.Modifiers.HasShift() && !e.IsRune() {
		parts = append(parts, "S")
	}

	var name string
	switch e.Key {
	case KeyRune:
		if e.Rune == ' ' {
			name = "Space"
		} else {
			name = string(e.Rune)
		}
	case KeyEscape:
		name = "Esc"
	case KeyBackspace:
		name = "BS"
	case KeyDelete:
		name = "Del"
	case KeyInsert:
		name = "Ins"
	case KeyPageUp:
		name = "PgUp"
	case KeyPageDown:
		name = "PgDn"
	default:
		name = e.Key.String()
	}

	parts = append(parts, name)
	return strings.Join(parts, "-")
}

// Equals returns true if two events represent the same key press.
// Timestamps are not compared.
func (e Event) Equals(other Event) bool {
	return e.Key == other.Key &&
		e.Rune == other.Rune &&
		e.Modifiers == other.Modifiers
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Key: %s, Rune: %q, Modifiers: %s}",
		e.Key.String(), e.Rune, e.Modifiers.String())
}
