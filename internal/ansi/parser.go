package ansi

// State is the position of the parser within an escape sequence.
type State uint8

const (
	// StateNormal passes tokens straight through.
	StateNormal State = iota
	// StateExpectingBracket follows an ESC.
	StateExpectingBracket
	// StateInResponse accumulates a CSI (or SS3) sequence.
	StateInResponse
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateExpectingBracket:
		return "expecting-bracket"
	case StateInResponse:
		return "in-response"
	default:
		return "unknown"
	}
}

const ss3Introducer = 'O'

// IsSS3Final reports whether r can end an ESC O sequence. Terminals send
// an upper-case letter (cursor keys, Home/End, F1-F4, keypad Enter).
func IsSS3Final(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// Matcher claims complete sequences that answer an outstanding request.
type Matcher interface {
	// Match is called with each held sequence as it grows. Returning true
	// consumes the sequence.
	Match(seq string) bool
}

// MatcherFunc adapts a function to the Matcher interface.
type MatcherFunc func(seq string) bool

// Match calls f(seq).
func (f MatcherFunc) Match(seq string) bool {
	return f(seq)
}

// Chunk is one unit of parser output: a single pass-through token or a
// whole released escape sequence.
type Chunk[T any] struct {
	Tokens []Token[T]
}

// IsSequence reports whether the chunk starts with ESC.
func (c Chunk[T]) IsSequence() bool {
	return len(c.Tokens) > 0 && c.Tokens[0].Char == ESC
}

// String returns the chunk's runes as a string.
func (c Chunk[T]) String() string {
	return tokensString(c.Tokens)
}

// Flatten concatenates the tokens of chunks in order.
func Flatten[T any](chunks []Chunk[T]) []Token[T] {
	n := 0
	for _, c := range chunks {
		n += len(c.Tokens)
	}
	out := make([]Token[T], 0, n)
	for _, c := range chunks {
		out = append(out, c.Tokens...)
	}
	return out
}

// Parser splits a token stream into pass-through chunks and sequences
// claimed by its Matcher.
//
// The held buffer is empty whenever the state is StateNormal. A Parser is
// not safe for concurrent use.
type Parser[T any] struct {
	matcher Matcher
	state   State
	held    []Token[T]
}

// NewParser creates a parser. A nil matcher claims nothing.
func NewParser[T any](m Matcher) *Parser[T] {
	if m == nil {
		m = MatcherFunc(func(string) bool { return false })
	}
	return &Parser[T]{
		matcher: m,
		state:   StateNormal,
		held:    make([]Token[T], 0, 32),
	}
}

// State returns the current parser state.
func (p *Parser[T]) State() State {
	return p.state
}

// Held returns the held sequence as a string.
func (p *Parser[T]) Held() string {
	return tokensString(p.held)
}

// Process feeds tokens through the parser and returns the chunks that are
// ready for decoding. Tokens of an incomplete sequence stay held across
// calls.
func (p *Parser[T]) Process(in []Token[T]) []Chunk[T] {
	out := make([]Chunk[T], 0, len(in))
	for _, t := range in {
		out = p.processToken(t, out)
	}
	return out
}

func (p *Parser[T]) processToken(t Token[T], out []Chunk[T]) []Chunk[T] {
	switch p.state {
	case StateExpectingBracket:
		return p.processExpectingBracket(t, out)
	case StateInResponse:
		return p.processInResponse(t, out)
	default:
		return p.processNormal(t, out)
	}
}

func (p *Parser[T]) processNormal(t Token[T], out []Chunk[T]) []Chunk[T] {
	if t.Char == ESC {
		p.held = append(p.held, t)
		p.state = StateExpectingBracket
		return out
	}
	return append(out, Chunk[T]{Tokens: []Token[T]{t}})
}

func (p *Parser[T]) processExpectingBracket(t Token[T], out []Chunk[T]) []Chunk[T] {
	p.held = append(p.held, t)
	if t.Char == '[' || t.Char == ss3Introducer {
		p.state = StateInResponse
		return out
	}
	return append(out, p.take())
}

func (p *Parser[T]) processInResponse(t Token[T], out []Chunk[T]) []Chunk[T] {
	p.held = append(p.held, t)
	seq := p.Held()

	if p.matcher.Match(seq) {
		p.Reset()
		return out
	}

	if p.held[1].Char == ss3Introducer {
		if IsSS3Final(t.Char) {
			return append(out, p.take())
		}
		// ESC O was Alt+O; t starts over.
		p.held = p.held[:2]
		out = append(out, p.take())
		return p.processNormal(t, out)
	}

	if IsKnownTerminator(t.Char) {
		return append(out, p.take())
	}
	return out
}

// take moves the held tokens into a chunk and returns to StateNormal.
func (p *Parser[T]) take() Chunk[T] {
	c := Chunk[T]{Tokens: append([]Token[T](nil), p.held...)}
	p.Reset()
	return c
}

// Release forces the parser back to StateNormal and returns the held
// tokens as one chunk. It returns nil when nothing is held.
func (p *Parser[T]) Release() []Chunk[T] {
	if len(p.held) == 0 {
		p.state = StateNormal
		return nil
	}
	return []Chunk[T]{p.take()}
}

// Reset discards any held tokens and returns to StateNormal.
func (p *Parser[T]) Reset() {
	p.held = p.held[:0]
	p.state = StateNormal
}
