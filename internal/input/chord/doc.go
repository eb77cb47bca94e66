// Package chord implements held-key tracking and combination matching.
//
// A Chord is the target combination: an ordered, deduplicated, case-folded
// sequence of key identifiers. A Tracker consumes key-down and key-up
// signals and maintains the subset of target keys currently held, firing its
// handler exactly once each time the full combination becomes held.
//
// # Ordering
//
// The declared order of a chord is a required press order. Held keys must
// always equal an initial segment of the target sequence: a key-down is
// accepted only when it is the next key the target expects. Any other
// key-down is ignored without disturbing progress, so a stray key while
// holding a valid prefix does not destroy an in-progress chord.
//
// # Lifecycle
//
// Completion is an edge, not a state. When the last key of the combination
// goes down, held state is cleared and then the handler runs, so a handler
// that synthesizes further signals observes an idle tracker. Releasing any
// held key removes just that key; progress otherwise persists indefinitely.
//
// Trackers are not safe for concurrent use. The surrounding delivery
// mechanism must invoke KeyDown, KeyUp, and Reset one signal at a time.
package chord
