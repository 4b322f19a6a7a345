package mouse

import (
	"fmt"
	"strings"
	"time"
)

// Position represents a screen coordinate as reported by the terminal.
// SGR reports are 1-based; the origin cell is (1,1).
type Position struct {
	X int
	Y int
}

// Equal returns true if two positions are equal.
func (p Position) Equal(other Position) bool {
	return p.X == other.X && p.Y == other.Y
}

// Distance returns the Manhattan distance (|dx| + |dy|) between two positions.
func (p Position) Distance(other Position) int {
	dx := p.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dy := p.Y - other.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// String returns "(x,y)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Flags is the set of buttons, wheel directions and modifiers carried by
// a mouse event.
type Flags uint32

const (
	Button1Pressed Flags = 1 << iota
	Button1Released
	Button1Clicked
	Button1DoubleClicked
	Button2Pressed
	Button2Released
	Button2Clicked
	Button2DoubleClicked
	Button3Pressed
	Button3Released
	Button3Clicked
	Button3DoubleClicked
	WheeledUp
	WheeledDown
	WheeledLeft
	WheeledRight
	ReportMousePosition
	ButtonShift
	ButtonCtrl
	ButtonAlt

	// FlagNone is the empty set.
	FlagNone Flags = 0
)

// ModifierMask selects the keyboard modifier bits.
const ModifierMask = ButtonShift | ButtonCtrl | ButtonAlt

var flagNames = [...]string{
	"Button1Pressed",
	"Button1Released",
	"Button1Clicked",
	"Button1DoubleClicked",
	"Button2Pressed",
	"Button2Released",
	"Button2Clicked",
	"Button2DoubleClicked",
	"Button3Pressed",
	"Button3Released",
	"Button3Clicked",
	"Button3DoubleClicked",
	"WheeledUp",
	"WheeledDown",
	"WheeledLeft",
	"WheeledRight",
	"ReportMousePosition",
	"ButtonShift",
	"ButtonCtrl",
	"ButtonAlt",
}

// Has reports whether every bit of f2 is set in f.
func (f Flags) Has(f2 Flags) bool {
	return f2 != 0 && f&f2 == f2
}

// Modifiers returns only the modifier bits of f.
func (f Flags) Modifiers() Flags {
	return f & ModifierMask
}

// String joins the names of the set bits with "|".
func (f Flags) String() string {
	if f == FlagNone {
		return "None"
	}
	var parts []string
	for i, name := range flagNames {
		if f&(1<<uint(i)) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

// buttonFlags holds the four per-button flags for one button.
type buttonFlags struct {
	pressed, released, clicked, doubleClicked Flags
}

// buttons lists buttons 1..3 in order.
var buttons = [...]buttonFlags{
	{Button1Pressed, Button1Released, Button1Clicked, Button1DoubleClicked},
	{Button2Pressed, Button2Released, Button2Clicked, Button2DoubleClicked},
	{Button3Pressed, Button3Released, Button3Clicked, Button3DoubleClicked},
}

// Event represents a decoded or synthesized mouse event.
type Event struct {
	// Position is the screen coordinate of the pointer.
	Position Position

	// Flags describes what happened.
	Flags Flags

	// Timestamp is when the report was received.
	Timestamp time.Time
}

// IsWheel returns true for wheel events.
func (e Event) IsWheel() bool {
	return e.Flags&(WheeledUp|WheeledDown|WheeledLeft|WheeledRight) != 0
}

// IsMotion returns true when the event reports pointer movement.
func (e Event) IsMotion() bool {
	return e.Flags.Has(ReportMousePosition)
}

// String returns a representation like "Button1Pressed (10,5)".
func (e Event) String() string {
	return e.Flags.String() + " " + e.Position.String()
}
