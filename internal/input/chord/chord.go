package chord

import (
	"strings"

	"github.com/dshills/keychord/internal/input/key"
)

// fingerprintSep joins raw key lists into a fingerprint. The unit separator
// cannot appear in sane key identifiers, so distinct lists never collide.
const fingerprintSep = "\x1f"

// Normalize reduces a caller-supplied key list to its canonical target
// sequence: every identifier lower-cased, duplicates removed preserving
// first-occurrence order. It is a pure function of its input.
// Returns ErrNoKeys when rawKeys is empty.
func Normalize(rawKeys []string) ([]string, error) {
	if len(rawKeys) == 0 {
		return nil, ErrNoKeys
	}

	seen := make(map[string]bool, len(rawKeys))
	keys := make([]string, 0, len(rawKeys))
	for _, raw := range rawKeys {
		k := key.Canon(raw)
		if seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	return keys, nil
}

// Fingerprint serializes a raw key list for identity comparison. Two raw
// lists with the same fingerprint are the same configuration by value.
func Fingerprint(rawKeys []string) string {
	return strings.Join(rawKeys, fingerprintSep)
}

// Chord is an immutable target combination: the ordered sequence of
// canonical key identifiers that must become held, in declared order, to
// complete the combination.
type Chord struct {
	keys        []string
	fingerprint string
}

// New builds a chord from a caller-supplied key list.
// Returns ErrNoKeys when rawKeys is empty.
func New(rawKeys []string) (*Chord, error) {
	keys, err := Normalize(rawKeys)
	if err != nil {
		return nil, err
	}
	return &Chord{
		keys:        keys,
		fingerprint: Fingerprint(rawKeys),
	}, nil
}

// Len returns the number of keys in the chord.
func (c *Chord) Len() int {
	return len(c.keys)
}

// At returns the canonical key at the given position, or "" if out of range.
func (c *Chord) At(i int) string {
	if i < 0 || i >= len(c.keys) {
		return ""
	}
	return c.keys[i]
}

// Contains reports whether the canonical key k is part of the chord.
func (c *Chord) Contains(k string) bool {
	for _, ck := range c.keys {
		if ck == k {
			return true
		}
	}
	return false
}

// Keys returns a copy of the canonical key sequence.
func (c *Chord) Keys() []string {
	keys := make([]string, len(c.keys))
	copy(keys, c.keys)
	return keys
}

// Fingerprint returns the serialized form of the raw input the chord was
// built from. Equal fingerprints mean the configuration has not changed.
func (c *Chord) Fingerprint() string {
	return c.fingerprint
}

// String returns a human-readable representation, e.g. "control+k".
func (c *Chord) String() string {
	return strings.Join(c.keys, "+")
}
