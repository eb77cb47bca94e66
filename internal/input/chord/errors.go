package chord

import "errors"

// Sentinel errors for chord construction. These are configuration errors
// raised at activation time; no tracker operation fails after construction.
var (
	// ErrNoKeys is returned when the key list is empty or missing.
	ErrNoKeys = errors.New("keys must be a non-empty ordered list of key identifiers")

	// ErrNilHandler is returned when no handler is provided.
	ErrNilHandler = errors.New("handler cannot be nil")
)
