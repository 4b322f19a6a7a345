package key

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	esc       = "\x1b"
	csiPrefix = "\x1b["
	ss3Prefix = "\x1bO"
)

// Pattern recognizes one shape of keyboard escape sequence.
type Pattern interface {
	// Name identifies the pattern in logs and tests.
	Name() string

	// Match reports whether seq has the shape this pattern decodes.
	Match(seq string) bool

	// Decode converts seq to a key event. ok is false when seq has the
	// right shape but does not name a known key.
	Decode(seq string) (ev Event, ok bool)

	// Last reports whether the pattern must be tried after all others.
	Last() bool
}

// Decoder turns complete escape sequences into key events by trying its
// registered patterns in priority order.
//
// The zero value has no patterns; NewDecoder returns one with the standard
// xterm/VT set. A Decoder is not safe for concurrent use.
type Decoder struct {
	first []Pattern
	last  []Pattern
}

// NewDecoder creates a decoder with the default pattern set.
func NewDecoder() *Decoder {
	d := &Decoder{}
	d.Register(csiCursorPattern{})
	d.Register(csiTildePattern{})
	d.Register(ss3Pattern{})
	d.Register(escapePattern{})
	d.Register(altPrefixPattern{})
	return d
}

// Register adds a pattern. Patterns are tried in registration order,
// except that last-priority patterns always follow the others.
func (d *Decoder) Register(p Pattern) {
	if p.Last() {
		d.last = append(d.last, p)
		return
	}
	d.first = append(d.first, p)
}

// Patterns returns the patterns in the order they are tried.
func (d *Decoder) Patterns() []Pattern {
	out := make([]Pattern, 0, len(d.first)+len(d.last))
	out = append(out, d.first...)
	return append(out, d.last...)
}

// Decode returns the key for seq. ok is false when no pattern recognizes
// it, which is the normal outcome for input that is not a keyboard sequence.
func (d *Decoder) Decode(seq string) (Event, bool) {
	for _, p := range d.first {
		if p.Match(seq) {
			return p.Decode(seq)
		}
	}
	for _, p := range d.last {
		if p.Match(seq) {
			return p.Decode(seq)
		}
	}
	return Event{}, false
}

// splitCSI splits "ESC [ p1 ; p2 ... F" into numeric parameters and the
// final byte. Every parameter must be a non-empty run of digits.
func splitCSI(seq string) (params []int, final byte, ok bool) {
	if len(seq) < len(csiPrefix)+1 || !strings.HasPrefix(seq, csiPrefix) {
		return nil, 0, false
	}
	final = seq[len(seq)-1]
	body := seq[len(csiPrefix) : len(seq)-1]
	if body == "" {
		return nil, final, true
	}
	for _, field := range strings.Split(body, ";") {
		if field == "" {
			return nil, 0, false
		}
		n, err := strconv.Atoi(field)
		if err != nil || n < 0 || field[0] == '+' {
			return nil, 0, false
		}
		params = append(params, n)
	}
	return params, final, true
}

// cursorFinals maps the final byte of cursor and F1-F4 sequences to keys.
var cursorFinals = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
	'P': KeyF1,
	'Q': KeyF2,
	'R': KeyF3,
	'S': KeyF4,
}

// csiCursorPattern decodes ESC [ A and the modified form ESC [ 1 ; m A.
type csiCursorPattern struct{}

func (csiCursorPattern) Name() string { return "csi-cursor" }
func (csiCursorPattern) Last() bool   { return false }

func (csiCursorPattern) Match(seq string) bool {
	params, final, ok := splitCSI(seq)
	if !ok {
		return false
	}
	if _, known := cursorFinals[final]; !known {
		return false
	}
	return len(params) == 0 || (len(params) == 2 && params[0] == 1)
}

func (p csiCursorPattern) Decode(seq string) (Event, bool) {
	if !p.Match(seq) {
		return Event{}, false
	}
	params, final, _ := splitCSI(seq)
	mods := ModNone
	if len(params) == 2 {
		mods = FromXterm(params[1])
	}
	return NewSpecialEvent(cursorFinals[final], mods), true
}

// tildeCodes maps the numeric code of ESC [ n ~ sequences to keys.
var tildeCodes = map[int]Key{
	1:  KeyHome,
	2:  KeyInsert,
	3:  KeyDelete,
	4:  KeyEnd,
	5:  KeyPageUp,
	6:  KeyPageDown,
	7:  KeyHome,
	8:  KeyEnd,
	11: KeyF1,
	12: KeyF2,
	13: KeyF3,
	14: KeyF4,
	15: KeyF5,
	17: KeyF6,
	18: KeyF7,
	19: KeyF8,
	20: KeyF9,
	21: KeyF10,
	23: KeyF11,
	24: KeyF12,
}

// csiTildePattern decodes ESC [ n ~ and ESC [ n ; m ~.
type csiTildePattern struct{}

func (csiTildePattern) Name() string { return "csi-tilde" }
func (csiTildePattern) Last() bool   { return false }

func (csiTildePattern) Match(seq string) bool {
	params, final, ok := splitCSI(seq)
	return ok && final == '~' && (len(params) == 1 || len(params) == 2)
}

func (p csiTildePattern) Decode(seq string) (Event, bool) {
	if !p.Match(seq) {
		return Event{}, false
	}
	params, _, _ := splitCSI(seq)
	k, known := tildeCodes[params[0]]
	if !known {
		return Event{}, false
	}
	mods := ModNone
	if len(params) == 2 {
		mods = FromXterm(params[1])
	}
	return NewSpecialEvent(k, mods), true
}

// ss3Pattern decodes ESC O x, sent for F1-F4 and for cursor keys in
// application cursor mode.
type ss3Pattern struct{}

func (ss3Pattern) Name() string { return "ss3" }
func (ss3Pattern) Last() bool   { return false }

func (ss3Pattern) Match(seq string) bool {
	if len(seq) != len(ss3Prefix)+1 || !strings.HasPrefix(seq, ss3Prefix) {
		return false
	}
	_, known := cursorFinals[seq[len(seq)-1]]
	return known
}

func (p ss3Pattern) Decode(seq string) (Event, bool) {
	if !p.Match(seq) {
		return Event{}, false
	}
	return NewSpecialEvent(cursorFinals[seq[len(seq)-1]], ModNone), true
}

// escapePattern decodes a bare ESC and a doubled ESC (Alt+Escape).
type escapePattern struct{}

func (escapePattern) Name() string { return "escape" }
func (escapePattern) Last() bool   { return false }

func (escapePattern) Match(seq string) bool {
	return seq == esc || seq == esc+esc
}

func (escapePattern) Decode(seq string) (Event, bool) {
	switch seq {
	case esc:
		return NewSpecialEvent(KeyEscape, ModNone), true
	case esc + esc:
		return NewSpecialEvent(KeyEscape, ModAlt), true
	}
	return Event{}, false
}

// altPrefixPattern decodes ESC followed by exactly one character, which
// terminals send for Alt+key. Its shape is a prefix of every CSI and SS3
// sequence, so it runs last.
type altPrefixPattern struct{}

func (altPrefixPattern) Name() string { return "alt-prefix" }
func (altPrefixPattern) Last() bool   { return true }

func (altPrefixPattern) Match(seq string) bool {
	if !strings.HasPrefix(seq, esc) {
		return false
	}
	rest := seq[len(esc):]
	r, size := utf8.DecodeRuneInString(rest)
	return size > 0 && size == len(rest) && r != '[' && r != utf8.RuneError
}

func (p altPrefixPattern) Decode(seq string) (Event, bool) {
	if !p.Match(seq) {
		return Event{}, false
	}
	r, _ := utf8.DecodeRuneInString(seq[len(esc):])
	switch {
	case r >= 0x01 && r <= 0x1a:
		return NewRuneEvent('a'+r-1, ModCtrl|ModAlt), true
	case r == 0x1f:
		return NewRuneEvent('7', ModCtrl|ModShift|ModAlt), true
	case r == 0x7f:
		return NewSpecialEvent(KeyBackspace, ModAlt), true
	case unicode.IsPrint(r):
		return NewRuneEvent(r, ModAlt), true
	}
	return Event{}, false
}
