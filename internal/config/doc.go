// Package config loads conio settings.
//
// Settings come from three layers, lowest first: built-in defaults, an
// optional TOML file and CONIO_* environment variables. Command-line flags
// are applied on top by the caller.
//
//	[driver]
//	kind = "auto"
//	mouse = true
//
//	[input]
//	click_window = "500ms"
//	click_tolerance = 1
//	escape_timeout = "50ms"
//
//	[requests]
//	timeout = "1s"
//
//	[logging]
//	level = "info"
//	file = ""
package config
