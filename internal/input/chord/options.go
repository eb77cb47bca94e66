package chord

// Options is the immutable behavioral configuration for a tracker,
// resolved once at construction.
type Options struct {
	// OverrideSystem suppresses the source's default handling of the
	// signal that completes the combination. Default false.
	OverrideSystem bool

	// IgnoreInputFields discards key-down signals whose origin is a
	// text-entry context. Default true.
	IgnoreInputFields bool

	// RepeatOnHold treats OS auto-repeat key-down signals as legitimate
	// presses, so a held combination keeps re-firing. When false, repeats
	// are ignored and only the initial press-to-completion transition
	// fires. Default true.
	RepeatOnHold bool
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		OverrideSystem:    false,
		IgnoreInputFields: true,
		RepeatOnHold:      true,
	}
}
