// Package config loads declarative shortcut definitions from TOML files.
//
// A shortcut file is a list of [[shortcut]] tables:
//
//	[[shortcut]]
//	name = "save"
//	keys = ["Control", "S"]
//	override_system = true
//	repeat_on_hold = false
//
// The behavioral flags are optional and default to the chord package's
// documented defaults (ignore_input_fields = true, repeat_on_hold = true,
// override_system = false). Files are validated on load: every shortcut
// needs a name, a non-empty key list, and names must be unique.
package config
