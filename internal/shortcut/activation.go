package shortcut

import (
	"errors"
	"sync"

	"github.com/dshills/keychord/internal/event"
	"github.com/dshills/keychord/internal/input/chord"
	"github.com/dshills/keychord/internal/input/key"
)

// Activation is one live shortcut: a tracker subscribed to the bus.
type Activation struct {
	mu       sync.Mutex
	registry *Registry
	tracker  *chord.Tracker
	handler  chord.Handler
	pending  []string
	sub      event.Subscription
	closed   bool
}

// ID returns the activation's unique identifier.
func (a *Activation) ID() string {
	return a.sub.ID()
}

// onSignal routes bus signals into the tracker. The mutex serializes
// tracker access against the runtime control surface (Reset, SetKeys,
// Close) but is released before the user handler runs, so a handler may
// publish further signals or close its own activation without deadlocking
// on re-entry.
func (a *Activation) onSignal(sig key.Signal) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	switch sig.Kind {
	case key.KindDown:
		a.tracker.KeyDown(sig)
	case key.KindUp:
		a.tracker.KeyUp(sig)
	}
	fired := a.pending
	a.pending = nil
	a.mu.Unlock()

	if fired != nil {
		a.handler(fired)
	}
}

// capture is the tracker's handler. It runs inside KeyDown with the
// activation lock held, so it only records the completion; onSignal
// invokes the real handler after unlocking.
func (a *Activation) capture(keys []string) {
	a.pending = keys
}

// Reset clears the activation's in-progress held state.
func (a *Activation) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tracker.Reset()
}

// SetKeys replaces the activation's combination. A raw list equal by value
// to the current one is a no-op; a changed list resets held state.
func (a *Activation) SetKeys(keys []string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tracker.SetKeys(keys)
}

// Held returns a copy of the keys currently held, in press order.
func (a *Activation) Held() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tracker.Held()
}

// Target returns the activation's current target chord.
func (a *Activation) Target() *chord.Chord {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tracker.Target()
}

// Close detaches the activation from the bus. It is idempotent; after the
// first call no further signals reach the tracker.
func (a *Activation) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	a.mu.Unlock()

	a.registry.remove(a.sub.ID())

	err := a.registry.bus.Unsubscribe(a.sub)
	if errors.Is(err, event.ErrBusClosed) || errors.Is(err, event.ErrSubscriptionNotFound) {
		// The bus already dropped the subscription.
		return nil
	}
	return err
}
