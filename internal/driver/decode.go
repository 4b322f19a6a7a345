package driver

import (
	"time"
	"unicode/utf8"

	"github.com/dshills/conio/internal/ansi"
)

// runeDecoder turns raw input bytes into tokens. A multi-byte rune split
// across two reads is held until its remaining bytes arrive.
type runeDecoder struct {
	pending []byte
}

// decode appends p to any pending bytes and returns the complete runes.
func (d *runeDecoder) decode(p []byte, at time.Time) []ansi.Token[Record] {
	buf := p
	if len(d.pending) > 0 {
		buf = append(d.pending, p...)
		d.pending = nil
	}

	out := make([]ansi.Token[Record], 0, len(buf))
	for len(buf) > 0 {
		if !utf8.FullRune(buf) {
			d.pending = append([]byte(nil), buf...)
			break
		}
		r, size := utf8.DecodeRune(buf)
		out = append(out, ansi.Token[Record]{
			Char:    r,
			Payload: Record{Time: at, Width: size},
		})
		buf = buf[size:]
	}
	return out
}
