package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNilHandler(t *testing.T) {
	if _, err := New("some/path", nil); err == nil {
		t.Error("New(nil handler) should fail")
	}
}

func TestDetectsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shortcuts.toml")
	if err := os.WriteFile(path, []byte("# empty\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	changed := make(chan struct{}, 1)
	w, err := New(path, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}, WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("# changed\n"), 0o644); err != nil {
		t.Fatalf("writing change: %v", err)
	}

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}
}

func TestIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shortcuts.toml")
	if err := os.WriteFile(path, []byte("# empty\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	changed := make(chan struct{}, 1)
	w, err := New(path, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}, WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer w.Close()

	sibling := filepath.Join(dir, "other.toml")
	if err := os.WriteFile(sibling, []byte("# sibling\n"), 0o644); err != nil {
		t.Fatalf("writing sibling: %v", err)
	}

	select {
	case <-changed:
		t.Error("sibling file change should not notify")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestCloseIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shortcuts.toml")
	if err := os.WriteFile(path, []byte("# empty\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	w, err := New(path, func() {})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close error: %v", err)
	}
}

func TestPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shortcuts.toml")
	if err := os.WriteFile(path, []byte("# empty\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	w, err := New(path, func() {})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer w.Close()

	if got := w.Path(); got != path {
		t.Errorf("Path() = %q, want %q", got, path)
	}
}
