// Package shortcut binds chord trackers to a signal bus.
//
// The Registry is the activation surface: Bind validates the activation
// contract (non-empty keys, non-nil handler), builds a tracker, and
// subscribes it to the bus. Each Bind returns an independent Activation;
// trackers own no shared state, so any number of shortcuts can coexist.
//
// An Activation exposes the manual control surface the host may need at
// runtime: Reset to clear in-progress state (e.g. on window blur), SetKeys
// to swap the combination, and Close to detach from the bus. Close is
// guaranteed to unsubscribe, so repeated bind/close cycles never leak
// listeners.
package shortcut
