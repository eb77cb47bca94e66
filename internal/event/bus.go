package event

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/keychord/internal/input/key"
)

// Handler receives a published key signal.
type Handler func(sig key.Signal)

// Subscription identifies an attached handler.
type Subscription struct {
	id string
}

// ID returns the unique subscription identifier.
func (s Subscription) ID() string {
	return s.id
}

// Bus delivers key signals to subscribers synchronously and in
// subscription order. It is safe for concurrent subscription management,
// but signal delivery itself is sequential per Publish call.
type Bus struct {
	mu     sync.RWMutex
	subs   []subscriber
	closed bool

	// Stats
	published     atomic.Uint64
	delivered     atomic.Uint64
	handlerPanics atomic.Uint64
}

type subscriber struct {
	id      string
	handler Handler
}

// Stats reports bus delivery counters.
type Stats struct {
	// Published is the number of signals accepted by Publish.
	Published uint64

	// Delivered is the number of handler invocations.
	Delivered uint64

	// HandlerPanics is the number of recovered handler panics.
	HandlerPanics uint64
}

// NewBus creates an empty signal bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe attaches a handler and returns its subscription handle.
func (b *Bus) Subscribe(h Handler) (Subscription, error) {
	if h == nil {
		return Subscription{}, ErrNilHandler
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return Subscription{}, ErrBusClosed
	}

	sub := subscriber{id: uuid.NewString(), handler: h}
	b.subs = append(b.subs, sub)
	return Subscription{id: sub.id}, nil
}

// Unsubscribe detaches a previously subscribed handler.
func (b *Bus) Unsubscribe(sub Subscription) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBusClosed
	}

	for i, s := range b.subs {
		if s.id == sub.id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return nil
		}
	}
	return ErrSubscriptionNotFound
}

// Publish delivers a signal to every subscriber, in subscription order, on
// the caller's goroutine. Handler panics are recovered and counted so one
// faulty subscriber cannot break delivery to the rest.
func (b *Bus) Publish(sig key.Signal) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrBusClosed
	}
	subs := make([]subscriber, len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	b.published.Add(1)
	for _, s := range subs {
		b.deliver(s, sig)
	}
	return nil
}

func (b *Bus) deliver(s subscriber, sig key.Signal) {
	defer func() {
		if r := recover(); r != nil {
			b.handlerPanics.Add(1)
		}
	}()
	s.handler(sig)
	b.delivered.Add(1)
}

// SubscriberCount returns the number of attached handlers.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Stats returns a snapshot of the delivery counters.
func (b *Bus) Stats() Stats {
	return Stats{
		Published:     b.published.Load(),
		Delivered:     b.delivered.Load(),
		HandlerPanics: b.handlerPanics.Load(),
	}
}

// Close detaches all subscribers. Further operations return ErrBusClosed.
// Close is idempotent.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	b.subs = nil
}
