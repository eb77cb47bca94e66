// Package event provides the signal bus connecting key-signal sources to
// shortcut trackers.
//
// The bus delivers every published signal to all subscribers synchronously,
// in subscription order, on the publisher's goroutine. There is no queueing
// and no internal parallelism: each signal is fully processed before the
// next one, which is the delivery contract trackers rely on.
//
// Subscriptions are explicit handles. A subscriber attaches with Subscribe
// and must detach with Unsubscribe (or rely on Close), so no listener
// leaks across repeated activations.
package event
