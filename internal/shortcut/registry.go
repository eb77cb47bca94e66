package shortcut

import (
	"fmt"
	"sync"

	"github.com/dshills/keychord/internal/event"
	"github.com/dshills/keychord/internal/input/chord"
)

// Registry manages shortcut activations against a single signal bus.
type Registry struct {
	mu     sync.Mutex
	bus    *event.Bus
	active map[string]*Activation
}

// NewRegistry creates a registry bound to the given bus.
func NewRegistry(bus *event.Bus) *Registry {
	return &Registry{
		bus:    bus,
		active: make(map[string]*Activation),
	}
}

// Bind activates a shortcut: it validates the activation contract, builds
// a tracker for the key list, and subscribes it to the bus. Configuration
// errors (chord.ErrNoKeys, chord.ErrNilHandler) abort the activation.
func (r *Registry) Bind(keys []string, handler chord.Handler, opts chord.Options) (*Activation, error) {
	if handler == nil {
		return nil, chord.ErrNilHandler
	}

	a := &Activation{
		registry: r,
		handler:  handler,
	}

	// The tracker fires through capture so completions are delivered after
	// the activation lock is released.
	tracker, err := chord.NewTracker(keys, a.capture, opts)
	if err != nil {
		return nil, err
	}
	a.tracker = tracker

	sub, err := r.bus.Subscribe(a.onSignal)
	if err != nil {
		return nil, fmt.Errorf("subscribing shortcut %v: %w", keys, err)
	}
	a.sub = sub

	r.mu.Lock()
	r.active[sub.ID()] = a
	r.mu.Unlock()

	return a, nil
}

// Bus returns the signal bus this registry is attached to.
func (r *Registry) Bus() *event.Bus {
	return r.bus
}

// ActiveCount returns the number of live activations.
func (r *Registry) ActiveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.active)
}

// ResetAll clears in-progress state on every live activation. Hosts call
// this on focus loss so no tracker is left with stuck keys.
func (r *Registry) ResetAll() {
	for _, a := range r.snapshot() {
		a.Reset()
	}
}

// Close closes every live activation. The bus itself stays open; it is
// owned by the caller.
func (r *Registry) Close() error {
	var firstErr error
	for _, a := range r.snapshot() {
		if err := a.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (r *Registry) snapshot() []*Activation {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]*Activation, 0, len(r.active))
	for _, a := range r.active {
		all = append(all, a)
	}
	return all
}

func (r *Registry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.active, id)
}
