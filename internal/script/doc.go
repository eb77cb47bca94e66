// Package script exposes shortcut binding to Lua.
//
// An Engine owns a sandboxed Lua state (base, table, string, and math
// libraries only) and preloads a "chord" module:
//
//	local chord = require("chord")
//
//	local save = chord.bind({"Control", "S"}, function(keys)
//	    print("saved via " .. table.concat(keys, "+"))
//	end, { override_system = true })
//
//	save.reset()   -- clear in-progress held state
//	save.unbind()  -- detach from the bus
//
// The third argument is optional; recognized options are override_system,
// ignore_input_fields, and repeat_on_hold.
//
// gopher-lua states are not goroutine-safe, so the Engine serializes all
// Lua execution (script loading and shortcut handler callbacks) behind
// one mutex.
package script
