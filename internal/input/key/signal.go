package key

import (
	"fmt"
	"time"
)

// Kind distinguishes key-down from key-up transitions.
type Kind int

const (
	// KindDown is a key press (including OS auto-repeats).
	KindDown Kind = iota

	// KindUp is a key release.
	KindUp
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindDown:
		return "down"
	case KindUp:
		return "up"
	default:
		return "unknown"
	}
}

// Signal represents a single key transition delivered by a signal source.
type Signal struct {
	// Kind is the transition direction.
	Kind Kind

	// Key is the key identifier as delivered by the source.
	// Use Canon for comparisons.
	Key string

	// Repeat is true for key-down signals generated by OS auto-repeat
	// while the key remains physically depressed.
	Repeat bool

	// Origin tags the context the signal originated from.
	Origin Origin

	// Timestamp is when the signal was created.
	Timestamp time.Time

	// suppress cancels the source's default handling of this signal.
	// Installed by the source; nil when the source has no default handling.
	suppress func()
}

// Down creates a key-down signal with the current timestamp.
func Down(k string) Signal {
	return Signal{Kind: KindDown, Key: k, Timestamp: time.Now()}
}

// Up creates a key-up signal with the current timestamp.
func Up(k string) Signal {
	return Signal{Kind: KindUp, Key: k, Timestamp: time.Now()}
}

// Canon returns the canonical form of the signal's key identifier.
func (s Signal) Canon() string {
	return Canon(s.Key)
}

// WithRepeat returns a copy with the auto-repeat flag set.
func (s Signal) WithRepeat() Signal {
	s.Repeat = true
	return s
}

// WithOrigin returns a copy with the origin tag set.
func (s Signal) WithOrigin(o Origin) Signal {
	s.Origin = o
	return s
}

// WithSuppress returns a copy carrying a suppress hook.
func (s Signal) WithSuppress(fn func()) Signal {
	s.suppress = fn
	return s
}

// SuppressDefault cancels the source's default handling of this signal.
// It is a no-op when the source installed no hook.
func (s Signal) SuppressDefault() {
	if s.suppress != nil {
		s.suppress()
	}
}

// CanSuppress returns true if the source installed a suppress hook.
func (s Signal) CanSuppress() bool {
	return s.suppress != nil
}

// String returns a human-readable representation, e.g. "down(control)".
func (s Signal) String() string {
	if s.Repeat {
		return fmt.Sprintf("%s(%s, repeat)", s.Kind, s.Canon())
	}
	return fmt.Sprintf("%s(%s)", s.Kind, s.Canon())
}
