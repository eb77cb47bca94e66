// Package term adapts tcell terminal input into key signals.
//
// Terminals report complete keystrokes, not press/release transitions, so
// the adapter synthesizes the transition stream a tracker expects: for
// each keystroke it emits key-down signals for the active modifiers in a
// fixed order (control, alt, meta, shift), then the main key, then the
// matching key-up signals in reverse. Auto-repeat detection is likewise
// unavailable at this layer, so signals never carry the repeat flag.
//
// Each synthesized batch shares one suppress hook; a tracker configured
// with OverrideSystem marks the whole keystroke consumed, which the host
// loop can query to skip its own default handling.
package term
