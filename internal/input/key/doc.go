// Package key provides keyboard event types and the decoder that turns
// terminal escape sequences into them.
//
// The package defines:
//
//   - Key: Identifies a keyboard key (special keys, function keys, or runes)
//   - Modifier: Represents modifier keys (Ctrl, Alt, Shift, Meta)
//   - Event: A single key press with modifiers and timestamp
//   - Decoder: An ordered registry of escape sequence patterns
//
// # Decoding
//
// Complete sequences produced by the ANSI parser are handed to a Decoder.
// Patterns are tried in registration order, except that the Alt-prefix
// pattern (ESC followed by one character) always runs last because its
// shape is a prefix of every CSI and SS3 sequence. Sequences no pattern
// recognizes decode to no key and are dropped by the caller.
//
// Single characters outside escape sequences are mapped with FromRune.
//
// # Key Specifications
//
// Key specifications are used by tools and tests to name keys:
//
//   - Simple keys: "a", "1", "Enter", "Escape"
//   - With modifiers: "Ctrl+S", "Alt+F4", "Ctrl+Shift+Up"
//   - Vim-style: "<C-s>", "<A-f>", "<S-Up>", "<Esc>"
package key
