package script

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keychord/internal/event"
	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/shortcut"
)

func newTestEngine(t *testing.T) (*Engine, *event.Bus) {
	t.Helper()
	bus := event.NewBus()
	reg := shortcut.NewRegistry(bus)
	e := NewEngine(reg)
	t.Cleanup(e.Close)
	return e, bus
}

// luaGlobal reads a global from the engine's state for assertions.
func luaGlobal(e *Engine, name string) lua.LValue {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.L.GetGlobal(name)
}

func TestBindFiresLuaHandler(t *testing.T) {
	e, bus := newTestEngine(t)

	err := e.DoString(`
		local chord = require("chord")
		matched = ""
		chord.bind({"Control", "K"}, function(keys)
			matched = table.concat(keys, "+")
		end)
	`)
	if err != nil {
		t.Fatalf("DoString error: %v", err)
	}
	if e.BoundCount() != 1 {
		t.Errorf("BoundCount() = %d, want 1", e.BoundCount())
	}

	_ = bus.Publish(key.Down("control"))
	_ = bus.Publish(key.Down("k"))

	if got := lua.LVAsString(luaGlobal(e, "matched")); got != "Control+K" {
		t.Errorf("matched = %q, want %q", got, "Control+K")
	}
}

func TestBindOptions(t *testing.T) {
	e, bus := newTestEngine(t)

	err := e.DoString(`
		local chord = require("chord")
		fired = 0
		chord.bind({"F5"}, function() fired = fired + 1 end, { repeat_on_hold = false })
	`)
	if err != nil {
		t.Fatalf("DoString error: %v", err)
	}

	_ = bus.Publish(key.Down("f5"))
	_ = bus.Publish(key.Down("f5").WithRepeat())

	if got := int(lua.LVAsNumber(luaGlobal(e, "fired"))); got != 1 {
		t.Errorf("fired = %d, want 1 with repeat_on_hold = false", got)
	}
}

func TestHandleUnbind(t *testing.T) {
	e, bus := newTestEngine(t)

	err := e.DoString(`
		local chord = require("chord")
		fired = 0
		local h = chord.bind({"a"}, function() fired = fired + 1 end)
		h.unbind()
	`)
	if err != nil {
		t.Fatalf("DoString error: %v", err)
	}
	if e.BoundCount() != 0 {
		t.Errorf("BoundCount() = %d after unbind, want 0", e.BoundCount())
	}

	_ = bus.Publish(key.Down("a"))
	if got := int(lua.LVAsNumber(luaGlobal(e, "fired"))); got != 0 {
		t.Errorf("fired = %d after unbind, want 0", got)
	}
}

func TestHandlerMayUnbindOwnHandle(t *testing.T) {
	e, bus := newTestEngine(t)

	// Unbinding from inside the firing handler takes the activation lock
	// while the Lua state is mid-call; this must not deadlock.
	err := e.DoString(`
		local chord = require("chord")
		fired = 0
		h = chord.bind({"q"}, function()
			fired = fired + 1
			h.unbind()
		end)
	`)
	if err != nil {
		t.Fatalf("DoString error: %v", err)
	}

	_ = bus.Publish(key.Down("q"))
	_ = bus.Publish(key.Up("q"))
	_ = bus.Publish(key.Down("q"))

	if got := int(lua.LVAsNumber(luaGlobal(e, "fired"))); got != 1 {
		t.Errorf("fired = %d, want 1 after self-unbind", got)
	}
	if e.BoundCount() != 0 {
		t.Errorf("BoundCount() = %d after self-unbind, want 0", e.BoundCount())
	}
}

func TestHandleReset(t *testing.T) {
	e, bus := newTestEngine(t)

	err := e.DoString(`
		local chord = require("chord")
		fired = 0
		h = chord.bind({"control", "k"}, function() fired = fired + 1 end)
	`)
	if err != nil {
		t.Fatalf("DoString error: %v", err)
	}

	_ = bus.Publish(key.Down("control"))
	if err := e.DoString(`h.reset()`); err != nil {
		t.Fatalf("DoString error: %v", err)
	}

	// "control" is no longer held, so "k" alone must not complete.
	_ = bus.Publish(key.Down("k"))
	if got := int(lua.LVAsNumber(luaGlobal(e, "fired"))); got != 0 {
		t.Errorf("fired = %d after reset, want 0", got)
	}
}

func TestBindEmptyKeysRaises(t *testing.T) {
	e, _ := newTestEngine(t)

	err := e.DoString(`
		local chord = require("chord")
		chord.bind({}, function() end)
	`)
	if err == nil {
		t.Fatal("bind with empty keys should raise")
	}
	if !strings.Contains(err.Error(), "non-empty") {
		t.Errorf("error = %v, want mention of non-empty key list", err)
	}
}

func TestHandlerErrorReported(t *testing.T) {
	bus := event.NewBus()
	reg := shortcut.NewRegistry(bus)

	var reported error
	e := NewEngine(reg, WithErrorHandler(func(err error) { reported = err }))
	defer e.Close()

	err := e.DoString(`
		local chord = require("chord")
		chord.bind({"a"}, function() error("handler exploded") end)
	`)
	if err != nil {
		t.Fatalf("DoString error: %v", err)
	}

	_ = bus.Publish(key.Down("a"))
	if reported == nil {
		t.Fatal("handler error should be reported")
	}
	if !strings.Contains(reported.Error(), "handler exploded") {
		t.Errorf("reported error = %v, want the Lua message", reported)
	}
}

func TestDoFile(t *testing.T) {
	e, bus := newTestEngine(t)

	path := filepath.Join(t.TempDir(), "bindings.lua")
	src := `
		local chord = require("chord")
		fired = 0
		chord.bind({"q"}, function() fired = fired + 1 end)
	`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("writing script: %v", err)
	}

	if err := e.DoFile(path); err != nil {
		t.Fatalf("DoFile error: %v", err)
	}

	_ = bus.Publish(key.Down("q"))
	if got := int(lua.LVAsNumber(luaGlobal(e, "fired"))); got != 1 {
		t.Errorf("fired = %d, want 1", got)
	}
}

func TestCloseUnbindsEverything(t *testing.T) {
	bus := event.NewBus()
	reg := shortcut.NewRegistry(bus)
	e := NewEngine(reg)

	err := e.DoString(`
		local chord = require("chord")
		chord.bind({"a"}, function() end)
		chord.bind({"b"}, function() end)
	`)
	if err != nil {
		t.Fatalf("DoString error: %v", err)
	}

	e.Close()
	e.Close() // idempotent

	if got := bus.SubscriberCount(); got != 0 {
		t.Errorf("SubscriberCount() = %d after Close, want 0", got)
	}
	if err := e.DoString(`x = 1`); !errors.Is(err, ErrEngineClosed) {
		t.Errorf("DoString after Close error = %v, want ErrEngineClosed", err)
	}
}

func TestSandboxExcludesOSAndIO(t *testing.T) {
	e, _ := newTestEngine(t)

	err := e.DoString(`
		if os ~= nil or io ~= nil then
			error("sandbox leak")
		end
	`)
	if err != nil {
		t.Errorf("os/io should be absent from the sandbox: %v", err)
	}
}
