package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into an Event.
//
// Supported formats:
//   - Single character: "a", "A", "1", "@"
//   - Special keys: "Enter", "Esc", "Tab", "F5", "PgUp"
//   - With modifiers: "Ctrl+C", "Alt+x", "Ctrl+Shift+Up"
//   - Vim-style: "<C-c>", "<A-x>", "<S-Up>", "<Esc>"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseJoined(spec[1:len(spec)-1], "-")
	}
	if len(spec) > 1 && strings.Contains(spec, "+") {
		return parseJoined(spec, "+")
	}
	return parseKey(spec, ModNone)
}

// parseJoined parses modifiers and a key separated by sep.
// The last element is the key; a trailing separator means the separator
// itself is the key ("Ctrl++").
func parseJoined(spec, sep string) (Event, error) {
	parts := strings.Split(spec, sep)
	keyPart := parts[len(parts)-1]
	mods := parts[:len(parts)-1]
	if keyPart == "" && len(mods) > 0 && mods[len(mods)-1] == "" {
		keyPart = sep
		mods = mods[:len(mods)-1]
	}

	var m Modifier
	for _, name := range mods {
		mod := ModifierFromName(name)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, name)
		}
		m = m.With(mod)
	}
	return parseKey(keyPart, m)
}

// parseKey parses a key name or single character with known modifiers.
func parseKey(spec string, mods Modifier) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrInvalidSpec
	}

	if utf8.RuneCountInString(spec) == 1 {
		r, _ := utf8.DecodeRuneInString(spec)
		if mods.HasCtrl() {
			r = unicode.ToLower(r)
		}
		return NewRuneEvent(r, mods), nil
	}

	if strings.EqualFold(spec, "space") {
		return NewRuneEvent(' ', mods), nil
	}
	if k := KeyFromName(spec); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}
	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, spec)
}
