// Package mouse decodes SGR mouse reports and synthesizes click events.
//
// # Decoding
//
// Terminals in SGR mouse mode (1006) report events as
//
//	ESC [ < B ; X ; Y M    press or motion
//	ESC [ < B ; X ; Y m    release
//
// Decode turns one such report into an Event. Coordinates are kept as
// reported, so the top-left cell is (1,1).
//
// # Click Detection
//
// Interpreter keeps per-button press/release state and appends a
// ButtonNClicked event when a release closes a press within the click
// window and position tolerance. A second qualifying click soon after the
// first yields ButtonNDoubleClicked instead:
//
//	in := mouse.NewInterpreter(mouse.DefaultClickWindow, mouse.DefaultClickTolerance)
//	for _, ev := range in.Process(raw) {
//	    handle(ev)
//	}
//
// Interpreter is not safe for concurrent use.
package mouse
