package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keychord/internal/input/key"
)

// sigString flattens signals for comparison.
func sigStrings(signals []key.Signal) []string {
	out := make([]string, len(signals))
	for i, s := range signals {
		out[i] = s.String()
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want []string
	}{
		{
			"plain rune",
			tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone),
			[]string{"down(a)", "up(a)"},
		},
		{
			"upper-case rune folds",
			tcell.NewEventKey(tcell.KeyRune, 'K', tcell.ModNone),
			[]string{"down(k)", "up(k)"},
		},
		{
			"ctrl-letter code implies control",
			tcell.NewEventKey(tcell.KeyCtrlK, 0, tcell.ModCtrl),
			[]string{"down(control)", "down(k)", "up(k)", "up(control)"},
		},
		{
			"alt rune",
			tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt),
			[]string{"down(alt)", "down(x)", "up(x)", "up(alt)"},
		},
		{
			"ctrl and shift order fixed",
			tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModCtrl|tcell.ModShift),
			[]string{"down(control)", "down(shift)", "down(p)", "up(p)", "up(shift)", "up(control)"},
		},
		{
			"escape",
			tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
			[]string{"down(escape)", "up(escape)"},
		},
		{
			"enter",
			tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone),
			[]string{"down(enter)", "up(enter)"},
		},
		{
			"function key",
			tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone),
			[]string{"down(f5)", "up(f5)"},
		},
		{
			"arrow key",
			tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone),
			[]string{"down(up)", "up(up)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sigStrings(Translate(tt.ev))
			if !equal(got, tt.want) {
				t.Errorf("Translate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTranslateNoRepeatFlag(t *testing.T) {
	// Terminals cannot distinguish auto-repeats; signals must not claim to.
	for _, sig := range Translate(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone)) {
		if sig.Repeat {
			t.Errorf("signal %v carries the repeat flag", sig)
		}
	}
}
