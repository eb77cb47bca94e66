// Package key provides the key identifier and signal types for the input
// system.
//
// This package defines the fundamental types for representing keyboard
// transitions:
//
//   - Canon: canonical (lower-cased) form of a key identifier
//   - Signal: a single key-down or key-up transition with its repeat flag,
//     origin context, and optional suppress hook
//   - Origin: tag describing where a signal originated, used to detect
//     text-entry contexts
//
// Signals are plain values. Sources construct them with Down and Up and
// refine them with the With* copies:
//
//	sig := key.Down("Control").WithOrigin(key.OriginInput)
//	if sig.Origin.IsTextEntry() {
//	    // skip shortcut handling while the user types
//	}
package key
