// Package driver provides the console drivers that own the terminal
// connection.
//
// A Driver switches the terminal into raw input mode, reads decoded runes,
// writes output and restores the saved mode when disposed. Three variants
// exist:
//
//   - Legacy: manipulates the OS handle directly (termios on Unix, console
//     modes on Windows) and reads through a cancelable reader.
//   - VT: wraps a tcell.Tty, by default the process's controlling terminal.
//   - Fake: in-memory input and output for tests and scripted sessions.
//
// Read blocks until input arrives or Cancel is called. Every driver
// tolerates Dispose after a failed Init and Dispose called twice.
package driver
