package term

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keychord/internal/event"
)

// ErrSourceClosed is returned when Run is called on a stopped source.
var ErrSourceClosed = errors.New("terminal source is closed")

// Source owns a tcell screen and publishes its keystrokes to a signal bus
// as synthesized down/up transitions.
type Source struct {
	screen tcell.Screen
	bus    *event.Bus

	// OnBlur, when set, is invoked whenever the terminal loses focus.
	// Hosts use it to reset tracker state so keys released while
	// unfocused do not stick.
	OnBlur func()

	// OnKey, when set, is invoked after each keystroke's signals have
	// been delivered; consumed reports whether any tracker suppressed
	// the keystroke's default handling.
	OnKey func(ev *tcell.EventKey, consumed bool)

	mu      sync.Mutex
	stopped bool
	fini    sync.Once
}

// NewSource creates a source on a new tcell screen.
func NewSource(bus *event.Bus) (*Source, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewSourceWithScreen(bus, screen), nil
}

// NewSourceWithScreen creates a source on an existing screen.
// Used with tcell's simulation screen in tests.
func NewSourceWithScreen(bus *event.Bus, screen tcell.Screen) *Source {
	return &Source{screen: screen, bus: bus}
}

// Init initializes the underlying screen and enables focus reporting.
func (s *Source) Init() error {
	if err := s.screen.Init(); err != nil {
		return err
	}
	s.screen.EnableFocus()
	return nil
}

// Screen returns the underlying tcell screen.
func (s *Source) Screen() tcell.Screen {
	return s.screen
}

// Run polls the screen and publishes signals until Stop is called or the
// context is cancelled. It blocks; callers run it on its own goroutine or
// as the main loop.
func (s *Source) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return ErrSourceClosed
	}
	s.mu.Unlock()

	// PollEvent blocks until the next terminal event, so cancellation has
	// to wake it the same way Stop does: by posting an interrupt.
	watchDone := make(chan struct{})
	defer close(watchDone)
	go func() {
		select {
		case <-ctx.Done():
			s.Stop()
		case <-watchDone:
		}
	}()

	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return ctx.Err()
		}

		switch e := ev.(type) {
		case *tcell.EventKey:
			s.publishKeystroke(e)

		case *tcell.EventResize:
			s.screen.Sync()

		case *tcell.EventFocus:
			if !e.Focused && s.OnBlur != nil {
				s.OnBlur()
			}

		case *tcell.EventInterrupt:
			s.mu.Lock()
			stopped := s.stopped
			s.mu.Unlock()
			if stopped {
				return ctx.Err()
			}
		}
	}
}

// publishKeystroke delivers one keystroke's synthesized transitions. The
// batch shares a single consumed flag so suppression of any signal marks
// the whole keystroke.
func (s *Source) publishKeystroke(ev *tcell.EventKey) {
	signals := Translate(ev)
	if len(signals) == 0 {
		return
	}

	var consumed atomic.Bool
	suppress := func() { consumed.Store(true) }

	for _, sig := range signals {
		_ = s.bus.Publish(sig.WithSuppress(suppress))
	}

	if s.OnKey != nil {
		s.OnKey(ev, consumed.Load())
	}
}

// Stop ends the Run loop. Safe to call from any goroutine; idempotent.
func (s *Source) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.mu.Unlock()

	_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// Fini releases the screen. Idempotent.
func (s *Source) Fini() {
	s.fini.Do(s.screen.Fini)
}
