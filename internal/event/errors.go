package event

import "errors"

// Sentinel errors for the signal bus.
var (
	// ErrNilHandler is returned when a nil handler is subscribed.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrSubscriptionNotFound is returned when unsubscribing an unknown
	// or already-removed subscription.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrBusClosed is returned for operations on a closed bus.
	ErrBusClosed = errors.New("signal bus is closed")
)
