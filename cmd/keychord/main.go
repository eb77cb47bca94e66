// Package main is the entry point for the keychord demo.
//
// It binds shortcuts from a TOML file and/or a Lua script, listens for
// terminal keystrokes, and displays matches as they fire. Ctrl+C exits.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keychord/internal/config"
	"github.com/dshills/keychord/internal/config/watcher"
	"github.com/dshills/keychord/internal/event"
	"github.com/dshills/keychord/internal/script"
	"github.com/dshills/keychord/internal/shortcut"
	"github.com/dshills/keychord/internal/term"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

type options struct {
	configPath string
	scriptPath string
	watch      bool
}

func run() int {
	opts := parseFlags()

	bus := event.NewBus()
	defer bus.Close()
	registry := shortcut.NewRegistry(bus)
	defer registry.Close()

	src, err := term.NewSource(bus)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: creating terminal: %v\n", err)
		return 1
	}
	if err := src.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: initializing terminal: %v\n", err)
		return 1
	}
	defer src.Fini()

	ui := newUI(src.Screen())
	app := &app{
		registry: registry,
		ui:       ui,
	}

	if opts.scriptPath != "" {
		engine := script.NewEngine(registry, script.WithErrorHandler(func(err error) {
			ui.logf("script error: %v", err)
		}))
		defer engine.Close()
		if err := engine.DoFile(opts.scriptPath); err != nil {
			src.Fini()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		ui.logf("script loaded: %s", opts.scriptPath)
	}

	if opts.configPath != "" {
		if err := app.loadConfig(opts.configPath); err != nil {
			src.Fini()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}

		if opts.watch {
			w, err := watcher.New(opts.configPath, func() {
				if err := app.loadConfig(opts.configPath); err != nil {
					ui.logf("reload failed: %v", err)
					return
				}
				ui.logf("reloaded %s", opts.configPath)
			})
			if err != nil {
				src.Fini()
				fmt.Fprintf(os.Stderr, "Error: watching config: %v\n", err)
				return 1
			}
			defer w.Close()
		}
	}

	// Clear stuck keys when the terminal loses focus; the matching
	// key-up signals will never arrive.
	src.OnBlur = registry.ResetAll

	src.OnKey = func(ev *tcell.EventKey, consumed bool) {
		if ev.Key() == tcell.KeyCtrlC {
			src.Stop()
			return
		}
		if !consumed {
			ui.logf("key: %s", ev.Name())
		}
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		src.Stop()
	}()

	ui.logf("keychord %s: press bound combinations, Ctrl+C to exit", version)
	ui.draw()

	if err := src.Run(context.Background()); err != nil {
		src.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// app holds the reloadable binding state.
type app struct {
	registry *shortcut.Registry
	ui       *ui

	mu     sync.Mutex
	active []*shortcut.Activation
}

// loadConfig replaces the current config-derived bindings with the file's
// contents. Script-created bindings are untouched.
func (a *app) loadConfig(path string) error {
	f, err := config.Load(path)
	if err != nil {
		return err
	}

	activations, err := f.Apply(a.registry, func(name string, keys []string) {
		a.ui.logf("matched %q (%s)", name, strings.Join(keys, "+"))
	})
	if err != nil {
		return err
	}

	a.mu.Lock()
	old := a.active
	a.active = activations
	a.mu.Unlock()

	for _, act := range old {
		_ = act.Close()
	}
	a.ui.logf("bound %d shortcuts from %s", len(activations), path)
	return nil
}

// ui is a minimal scrolling log on the tcell screen.
type ui struct {
	mu     sync.Mutex
	screen tcell.Screen
	lines  []string
}

func newUI(screen tcell.Screen) *ui {
	return &ui{screen: screen}
}

func (u *ui) logf(format string, args ...any) {
	u.mu.Lock()
	u.lines = append(u.lines, fmt.Sprintf(format, args...))
	_, height := u.screen.Size()
	if height > 0 && len(u.lines) > height {
		u.lines = u.lines[len(u.lines)-height:]
	}
	u.mu.Unlock()
	u.draw()
}

func (u *ui) draw() {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.screen.Clear()
	style := tcell.StyleDefault
	for y, line := range u.lines {
		for x, r := range line {
			u.screen.SetContent(x, y, r, nil, style)
		}
	}
	u.screen.Show()
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to a TOML shortcut file")
	flag.StringVar(&opts.configPath, "c", "", "Path to a TOML shortcut file (shorthand)")
	flag.StringVar(&opts.scriptPath, "script", "", "Path to a Lua binding script")
	flag.StringVar(&opts.scriptPath, "s", "", "Path to a Lua binding script (shorthand)")
	flag.BoolVar(&opts.watch, "watch", false, "Reload the shortcut file on change")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "keychord - key combination tracking demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: keychord [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  keychord -config shortcuts.toml\n")
		fmt.Fprintf(os.Stderr, "  keychord -config shortcuts.toml -watch\n")
		fmt.Fprintf(os.Stderr, "  keychord -script bindings.lua\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("keychord %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		os.Exit(0)
	}

	return opts
}
