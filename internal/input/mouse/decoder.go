package mouse

import (
	"strconv"
	"strings"
	"time"
)

// sgrPrefix introduces an SGR (mode 1006) mouse report.
const sgrPrefix = "\x1b[<"

// Button field bits of an SGR report.
const (
	sgrButtonMask = 0x03
	sgrShift      = 0x04
	sgrAlt        = 0x08
	sgrCtrl       = 0x10
	sgrMotion     = 0x20
	sgrWheel      = 0x40
	sgrExtended   = 0x80
)

// IsSGR reports whether seq has the SGR mouse report prefix.
func IsSGR(seq string) bool {
	return strings.HasPrefix(seq, sgrPrefix)
}

// Decode parses an SGR mouse report "ESC [ < B ; X ; Y M" (press or
// motion) or "... m" (release). ok is false for anything malformed.
func Decode(seq string) (ev Event, ok bool) {
	if !IsSGR(seq) || len(seq) < len(sgrPrefix)+1 {
		return Event{}, false
	}
	trailer := seq[len(seq)-1]
	if trailer != 'M' && trailer != 'm' {
		return Event{}, false
	}

	fields := strings.Split(seq[len(sgrPrefix):len(seq)-1], ";")
	if len(fields) != 3 {
		return Event{}, false
	}
	var vals [3]int
	for i, field := range fields {
		n, err := parseField(field)
		if err != nil {
			return Event{}, false
		}
		vals[i] = n
	}

	b := vals[0]
	if b&sgrExtended != 0 {
		return Event{}, false
	}

	var flags Flags
	if b&sgrShift != 0 {
		flags |= ButtonShift
	}
	if b&sgrAlt != 0 {
		flags |= ButtonAlt
	}
	if b&sgrCtrl != 0 {
		flags |= ButtonCtrl
	}

	btn := b & sgrButtonMask
	switch {
	case b&sgrWheel != 0:
		flags |= [...]Flags{WheeledUp, WheeledDown, WheeledLeft, WheeledRight}[btn]
	case b&sgrMotion != 0:
		flags |= ReportMousePosition
		if btn < 3 {
			flags |= buttons[btn].pressed
		}
	case btn == 3:
		// Button release in the X10 style carries no button number.
		flags |= ReportMousePosition
	case trailer == 'M':
		flags |= buttons[btn].pressed
	default:
		flags |= buttons[btn].released
	}

	return Event{
		Position:  Position{X: vals[1], Y: vals[2]},
		Flags:     flags,
		Timestamp: time.Now(),
	}, true
}

// parseField parses one unsigned decimal field.
func parseField(s string) (int, error) {
	if s == "" || s[0] < '0' || s[0] > '9' {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(s)
}
