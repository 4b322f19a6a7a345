package ansi

import "strings"

// ESC is the escape character that introduces every control sequence.
const ESC rune = 0x1b

// CSI is the Control Sequence Introducer, ESC [.
const CSI = "\x1b["

// Token is one decoded input rune plus a payload the parser never looks at.
type Token[T any] struct {
	Char    rune
	Payload T
}

// Runes wraps each rune of s in a token with the given payload.
func Runes[T any](s string, payload T) []Token[T] {
	out := make([]Token[T], 0, len(s))
	for _, r := range s {
		out = append(out, Token[T]{Char: r, Payload: payload})
	}
	return out
}

// tokensString joins the runes of tokens.
func tokensString[T any](tokens []Token[T]) string {
	var b strings.Builder
	b.Grow(len(tokens))
	for _, t := range tokens {
		b.WriteRune(t.Char)
	}
	return b.String()
}

// IsKnownTerminator reports whether r can end a CSI sequence: the ECMA-48
// final byte range 0x40-0x7E minus the C1 introducers [ \ ] and _.
func IsKnownTerminator(r rune) bool {
	if r < 0x40 || r > 0x7e {
		return false
	}
	switch r {
	case '[', '\\', ']', '_':
		return false
	}
	return true
}
