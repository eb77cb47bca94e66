package script

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keychord/internal/input/chord"
	"github.com/dshills/keychord/internal/shortcut"
)

// ErrorHandler receives errors raised by Lua shortcut handlers. Handler
// errors cannot propagate through the signal path, so they are reported
// out of band.
type ErrorHandler func(err error)

// Engine runs Lua scripts that bind shortcuts through a registry.
type Engine struct {
	mu       sync.Mutex
	L        *lua.LState
	registry *shortcut.Registry
	bound    map[*shortcut.Activation]bool
	onError  ErrorHandler
	closed   bool
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithErrorHandler sets the handler for Lua callback errors.
func WithErrorHandler(h ErrorHandler) EngineOption {
	return func(e *Engine) {
		e.onError = h
	}
}

// NewEngine creates a sandboxed engine bound to the given registry.
func NewEngine(reg *shortcut.Registry, opts ...EngineOption) *Engine {
	e := &Engine{
		registry: reg,
		bound:    make(map[*shortcut.Activation]bool),
	}
	for _, opt := range opts {
		opt(e)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)
	L.PreloadModule("chord", e.loadModule)
	e.L = L

	return e
}

// openSafeLibraries opens only safe Lua standard libraries.
// io, os, and debug stay closed; scripts configure shortcuts, they do
// not touch the system. The package library is opened solely for the
// require/preload plumbing PreloadModule depends on.
func openSafeLibraries(L *lua.LState) {
	lua.OpenPackage(L)
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// DoFile executes a Lua script file.
func (e *Engine) DoFile(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}
	if err := e.L.DoFile(path); err != nil {
		return fmt.Errorf("running script %s: %w", path, err)
	}
	return nil
}

// DoString executes Lua source.
func (e *Engine) DoString(src string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}
	if err := e.L.DoString(src); err != nil {
		return fmt.Errorf("running script: %w", err)
	}
	return nil
}

// BoundCount returns the number of activations the engine currently holds.
func (e *Engine) BoundCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.bound)
}

// Close unbinds every script-created shortcut and closes the Lua state.
// It is idempotent.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	activations := make([]*shortcut.Activation, 0, len(e.bound))
	for a := range e.bound {
		activations = append(activations, a)
	}
	e.bound = nil
	e.mu.Unlock()

	// Unsubscribe outside the engine lock: signal delivery takes the
	// activation lock before the engine lock, and Close must not invert
	// that order while an activation is still reachable from the bus.
	for _, a := range activations {
		_ = a.Close()
	}

	e.mu.Lock()
	e.L.Close()
	e.mu.Unlock()
}

// loadModule builds the "chord" module table.
func (e *Engine) loadModule(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"bind": e.luaBind,
	})
	L.Push(mod)
	return 1
}

// luaBind implements chord.bind(keys, fn [, opts]).
func (e *Engine) luaBind(L *lua.LState) int {
	keysTable := L.CheckTable(1)
	fn := L.CheckFunction(2)
	optsTable := L.OptTable(3, nil)

	keys := make([]string, 0, keysTable.Len())
	keysTable.ForEach(func(_, v lua.LValue) {
		if s, ok := v.(lua.LString); ok {
			keys = append(keys, string(s))
		}
	})

	opts := chord.DefaultOptions()
	if optsTable != nil {
		if b, ok := optsTable.RawGetString("override_system").(lua.LBool); ok {
			opts.OverrideSystem = bool(b)
		}
		if b, ok := optsTable.RawGetString("ignore_input_fields").(lua.LBool); ok {
			opts.IgnoreInputFields = bool(b)
		}
		if b, ok := optsTable.RawGetString("repeat_on_hold").(lua.LBool); ok {
			opts.RepeatOnHold = bool(b)
		}
	}

	a, err := e.registry.Bind(keys, func(matched []string) {
		e.invoke(fn, matched)
	}, opts)
	if err != nil {
		L.RaiseError("chord.bind: %s", err.Error())
		return 0
	}
	e.bound[a] = true

	handle := L.NewTable()
	L.SetField(handle, "reset", L.NewFunction(func(L *lua.LState) int {
		a.Reset()
		return 0
	}))
	L.SetField(handle, "unbind", L.NewFunction(func(L *lua.LState) int {
		_ = a.Close()
		delete(e.bound, a)
		return 0
	}))
	L.Push(handle)
	return 1
}

// invoke calls a Lua handler with the matched key list.
func (e *Engine) invoke(fn *lua.LFunction, keys []string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}

	tbl := e.L.NewTable()
	for _, k := range keys {
		tbl.Append(lua.LString(k))
	}

	err := e.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, tbl)
	if err != nil && e.onError != nil {
		e.onError(fmt.Errorf("shortcut handler: %w", err))
	}
}
