package key

import "strings"

// Canon returns the canonical form of a key identifier.
// Identifiers are compared case-insensitively throughout the input system,
// so "Control", "CONTROL", and "control" all canonicalize to "control".
func Canon(s string) string {
	return strings.ToLower(s)
}

// Origin tags where a signal originated. Hosts assign whatever tags make
// sense for their environment; only the text-entry tags below carry meaning
// for shortcut handling.
type Origin string

// Origin tags recognized as text-entry contexts.
const (
	// OriginNone indicates no particular origin context.
	OriginNone Origin = ""

	// OriginInput indicates a single-line text input.
	OriginInput Origin = "input"

	// OriginTextArea indicates a multi-line text area.
	OriginTextArea Origin = "textarea"

	// OriginSelect indicates a selection widget.
	OriginSelect Origin = "select"

	// OriginEditable indicates an editable rich-text region.
	OriginEditable Origin = "editable"
)

// IsTextEntry returns true if the origin is a designated text-entry context.
// Key-down signals from text-entry contexts are ignored by trackers
// configured with IgnoreInputFields.
func (o Origin) IsTextEntry() bool {
	switch o {
	case OriginInput, OriginTextArea, OriginSelect, OriginEditable:
		return true
	default:
		return false
	}
}
