package chord

import (
	"github.com/dshills/keychord/internal/input/key"
)

// Handler is invoked exactly once each time the combination becomes fully
// held. It receives the key list as supplied by the caller (original casing
// and order).
type Handler func(keys []string)

// Tracker consumes key-down and key-up signals for a single combination.
// It owns the held-key state exclusively; the target chord and options are
// read-only for its lifetime between SetKeys calls.
//
// Trackers are single-threaded: the delivery mechanism must run KeyDown,
// KeyUp, and Reset one at a time.
type Tracker struct {
	target  *Chord
	raw     []string
	held    []string
	opts    Options
	handler Handler
}

// NewTracker creates a tracker for the given key list.
// Returns ErrNoKeys or ErrNilHandler for invalid activation parameters.
func NewTracker(rawKeys []string, handler Handler, opts Options) (*Tracker, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	target, err := New(rawKeys)
	if err != nil {
		return nil, err
	}

	raw := make([]string, len(rawKeys))
	copy(raw, rawKeys)

	return &Tracker{
		target:  target,
		raw:     raw,
		held:    make([]string, 0, target.Len()),
		opts:    opts,
		handler: handler,
	}, nil
}

// KeyDown processes a key-down signal. It returns true when the signal
// completed the combination and the handler fired.
//
// Signals that cannot advance the combination are absorbed silently:
// keys outside the target, key-downs from text-entry origins (when
// configured), suppressed auto-repeats, and out-of-order keys. Rejecting a
// wrong key preserves existing progress.
func (t *Tracker) KeyDown(sig key.Signal) bool {
	k := sig.Canon()
	if !t.target.Contains(k) {
		return false
	}
	if t.opts.IgnoreInputFields && sig.Origin.IsTextEntry() {
		return false
	}
	if sig.Repeat && !t.opts.RepeatOnHold {
		return false
	}

	// Held keys must stay an exact ordered prefix of the target, so the
	// only legal next key is the one at the current held count.
	if k != t.target.At(len(t.held)) {
		return false
	}

	if len(t.held)+1 < t.target.Len() {
		t.held = append(t.held, k)
		return false
	}

	// Completion is an edge: clear held state before running the handler
	// so a handler that synthesizes further signals sees an idle tracker.
	if t.opts.OverrideSystem {
		sig.SuppressDefault()
	}
	t.held = t.held[:0]

	keys := make([]string, len(t.raw))
	copy(keys, t.raw)
	t.handler(keys)
	return true
}

// KeyUp processes a key-up signal, removing the released key from the held
// state wherever it sits. Releases of keys outside the target or not
// currently held are no-ops.
func (t *Tracker) KeyUp(sig key.Signal) {
	k := sig.Canon()
	if !t.target.Contains(k) {
		return
	}
	for i, held := range t.held {
		if held == k {
			t.held = append(t.held[:i], t.held[i+1:]...)
			return
		}
	}
}

// Reset unconditionally empties the held-key state. Hosts call this to
// clear stuck progress when key-up signals may have been missed, such as
// after an OS-level focus switch while a key was held.
func (t *Tracker) Reset() {
	t.held = t.held[:0]
}

// SetKeys replaces the target combination. The raw list is compared by
// value against the current one; an identical list is a no-op, a changed
// list rebuilds the chord and fully resets held state.
// Returns ErrNoKeys when rawKeys is empty, leaving the tracker unchanged.
func (t *Tracker) SetKeys(rawKeys []string) error {
	if Fingerprint(rawKeys) == t.target.Fingerprint() {
		return nil
	}

	target, err := New(rawKeys)
	if err != nil {
		return err
	}

	t.target = target
	t.raw = make([]string, len(rawKeys))
	copy(t.raw, rawKeys)
	t.Reset()
	return nil
}

// Held returns a copy of the keys currently held, in press order.
func (t *Tracker) Held() []string {
	held := make([]string, len(t.held))
	copy(held, t.held)
	return held
}

// Target returns the current target chord.
func (t *Tracker) Target() *Chord {
	return t.target
}

// Options returns the tracker's behavioral configuration.
func (t *Tracker) Options() Options {
	return t.opts
}
