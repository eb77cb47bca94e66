// Package watcher provides live reload for shortcut configuration files.
//
// A Watcher monitors a single file through fsnotify and invokes a reload
// handler after changes settle. Editors commonly replace files via
// write-rename, so the watch is placed on the parent directory and events
// are filtered to the target name; a debounce window collapses the bursts
// those strategies produce.
package watcher

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the settle window applied to change bursts.
const DefaultDebounce = 100 * time.Millisecond

// ErrClosed is returned for operations on a closed watcher.
var ErrClosed = errors.New("watcher is closed")

// Handler is invoked after the watched file changes.
type Handler func()

// Watcher monitors one file for changes.
type Watcher struct {
	path     string
	name     string
	handler  Handler
	debounce time.Duration

	fw      *fsnotify.Watcher
	closeCh chan struct{}
	wg      sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the settle window for change bursts.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// New starts watching path and invokes handler after each settled change.
func New(path string, handler Handler, opts ...Option) (*Watcher, error) {
	if handler == nil {
		return nil, errors.New("handler cannot be nil")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving watch path %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		path:     abs,
		name:     filepath.Base(abs),
		handler:  handler,
		debounce: DefaultDebounce,
		fw:       fw,
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w.wg.Add(1)
	go w.loop()

	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					<-timer.C
				}
				timer.Reset(w.debounce)
			}

		case <-fire:
			timer = nil
			fire = nil
			w.handler()

		case _, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			// Watch errors are transient; keep watching.

		case <-w.closeCh:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Base(ev.Name) != w.name {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

// Close stops watching and releases the underlying watcher. It is
// idempotent; after Close no further handler invocations occur.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.closeCh)
	err := w.fw.Close()
	w.wg.Wait()
	return err
}
