// Package ansi separates solicited escape-sequence responses from ordinary
// input and correlates them with the requests that asked for them.
//
// # Parser
//
// Parser consumes a stream of tokens (one rune plus an opaque payload) and
// tracks whether it sits inside an escape sequence. Ordinary tokens pass
// straight through. Escape sequences are held until they are complete and
// then either claimed by a Matcher (a response to an outstanding request)
// or released as a single Chunk for the keyboard and mouse decoders.
//
//	p := ansi.NewParser[driver.Record](correlator)
//	for _, chunk := range p.Process(tokens) {
//	    if chunk.IsSequence() {
//	        decodeSequence(chunk.String())
//	    }
//	}
//
// # Requests
//
// A Request is an outbound query such as Primary Device Attributes
// (ESC [ c) along with the CSI final byte of its reply. Correlator keeps
// outstanding requests oldest-first and completes each one exactly once,
// either with the decoded reply or with ErrNoResponse when it is abandoned.
//
// # Thread Safety
//
// Parser and Correlator are not safe for concurrent use; both belong to a
// single consumer goroutine. Request completion and Request.Response are
// safe to use from any goroutine.
package ansi
