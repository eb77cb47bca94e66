package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/keychord/internal/input/chord"
	"github.com/dshills/keychord/internal/shortcut"
)

// ErrNoName is returned when a shortcut has no name.
var ErrNoName = errors.New("shortcut must have a name")

// ErrDuplicateName is returned when two shortcuts share a name.
var ErrDuplicateName = errors.New("duplicate shortcut name")

// ParseError describes a malformed shortcut file.
type ParseError struct {
	// Path is the file that failed to parse.
	Path string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return "parsing shortcut file " + e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Shortcut is one declarative shortcut definition.
type Shortcut struct {
	// Name identifies the shortcut to the host's action dispatch.
	Name string `toml:"name"`

	// Keys is the ordered key list of the combination.
	Keys []string `toml:"keys"`

	// OverrideSystem suppresses default handling on match. Default false.
	OverrideSystem bool `toml:"override_system"`

	// IgnoreInputFields ignores key-downs from text-entry contexts.
	// Unset means true.
	IgnoreInputFields *bool `toml:"ignore_input_fields"`

	// RepeatOnHold treats auto-repeats as legitimate presses.
	// Unset means true.
	RepeatOnHold *bool `toml:"repeat_on_hold"`
}

// Options resolves the shortcut's flags against the chord defaults.
func (s *Shortcut) Options() chord.Options {
	opts := chord.DefaultOptions()
	opts.OverrideSystem = s.OverrideSystem
	if s.IgnoreInputFields != nil {
		opts.IgnoreInputFields = *s.IgnoreInputFields
	}
	if s.RepeatOnHold != nil {
		opts.RepeatOnHold = *s.RepeatOnHold
	}
	return opts
}

// File is a parsed shortcut file.
type File struct {
	Shortcuts []Shortcut `toml:"shortcut"`
}

// Load reads and validates a shortcut file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading shortcut file %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return nil, err
	}
	return f, nil
}

// Parse parses and validates shortcut file contents.
func Parse(data []byte) (*File, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, &ParseError{Path: "<data>", Err: err}
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	seen := make(map[string]bool, len(f.Shortcuts))
	for i := range f.Shortcuts {
		s := &f.Shortcuts[i]
		if s.Name == "" {
			return fmt.Errorf("shortcut %d: %w", i, ErrNoName)
		}
		if seen[s.Name] {
			return fmt.Errorf("shortcut %q: %w", s.Name, ErrDuplicateName)
		}
		seen[s.Name] = true
		if _, err := chord.Normalize(s.Keys); err != nil {
			return fmt.Errorf("shortcut %q: %w", s.Name, err)
		}
	}
	return nil
}

// MatchHandler receives the shortcut name and matched key list for every
// completed combination bound through Apply.
type MatchHandler func(name string, keys []string)

// Apply binds every shortcut in the file through the registry, routing
// matches to the handler. It returns the activations in file order; on
// error, activations bound so far are closed.
func (f *File) Apply(reg *shortcut.Registry, handler MatchHandler) ([]*shortcut.Activation, error) {
	if handler == nil {
		return nil, chord.ErrNilHandler
	}

	activations := make([]*shortcut.Activation, 0, len(f.Shortcuts))
	for i := range f.Shortcuts {
		s := f.Shortcuts[i]
		a, err := reg.Bind(s.Keys, func(keys []string) {
			handler(s.Name, keys)
		}, s.Options())
		if err != nil {
			for _, bound := range activations {
				_ = bound.Close()
			}
			return nil, fmt.Errorf("binding shortcut %q: %w", s.Name, err)
		}
		activations = append(activations, a)
	}
	return activations, nil
}
