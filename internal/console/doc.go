// Package console runs the input pipeline of a terminal session.
//
// A Loop owns a driver and two goroutines. The reader blocks in the
// driver and queues raw tokens; the consumer runs them through the
// escape-sequence parser, matches terminal replies to outstanding
// requests and decodes everything else into key and mouse events:
//
//	driver.Read -> queue -> ansi.Parser -> Correlator (replies)
//	                                    -> mouse.Decode -> Interpreter -> OnMouse
//	                                    -> key.Decoder / key.FromRune  -> OnKey
//
// All handlers run on the consumer goroutine, in input order.
package console
