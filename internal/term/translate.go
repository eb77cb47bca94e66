package term

import (
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keychord/internal/input/key"
)

// Translate converts one tcell keystroke into its synthesized transition
// stream: modifier downs, main key down, then ups in reverse order. It
// returns nil for keystrokes with no usable key identifier.
func Translate(ev *tcell.EventKey) []key.Signal {
	main, ctrl := keyName(ev)
	if main == "" {
		return nil
	}

	mods := make([]string, 0, 4)
	if ctrl || ev.Modifiers()&tcell.ModCtrl != 0 {
		mods = append(mods, "control")
	}
	if ev.Modifiers()&tcell.ModAlt != 0 {
		mods = append(mods, "alt")
	}
	if ev.Modifiers()&tcell.ModMeta != 0 {
		mods = append(mods, "meta")
	}
	if ev.Modifiers()&tcell.ModShift != 0 {
		mods = append(mods, "shift")
	}

	signals := make([]key.Signal, 0, 2*(len(mods)+1))
	for _, m := range mods {
		signals = append(signals, key.Down(m))
	}
	signals = append(signals, key.Down(main))
	signals = append(signals, key.Up(main))
	for i := len(mods) - 1; i >= 0; i-- {
		signals = append(signals, key.Up(mods[i]))
	}
	return signals
}

// keyName maps a tcell keystroke to a canonical key identifier. The second
// return is true when the keystroke implies the control modifier (tcell
// folds ctrl-letter combinations into dedicated key codes).
func keyName(ev *tcell.EventKey) (string, bool) {
	switch ev.Key() {
	case tcell.KeyRune:
		return strings.ToLower(string(ev.Rune())), false
	case tcell.KeyEscape:
		return "escape", false
	case tcell.KeyEnter:
		return "enter", false
	case tcell.KeyTab:
		return "tab", false
	case tcell.KeyBacktab:
		return "tab", false
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "backspace", false
	case tcell.KeyDelete:
		return "delete", false
	case tcell.KeyInsert:
		return "insert", false
	case tcell.KeyHome:
		return "home", false
	case tcell.KeyEnd:
		return "end", false
	case tcell.KeyPgUp:
		return "pageup", false
	case tcell.KeyPgDn:
		return "pagedown", false
	case tcell.KeyUp:
		return "up", false
	case tcell.KeyDown:
		return "down", false
	case tcell.KeyLeft:
		return "left", false
	case tcell.KeyRight:
		return "right", false
	case tcell.KeyCtrlSpace:
		return "space", true
	}

	if k := ev.Key(); k >= tcell.KeyF1 && k <= tcell.KeyF12 {
		return strings.ToLower(tcell.KeyNames[k]), false
	}

	// Ctrl-letter combinations arrive as dedicated key codes. The cases
	// above already claimed the codes that double as plain keys (tab,
	// enter, backspace, escape).
	if k := ev.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		letter := rune('a' + (k - tcell.KeyCtrlA))
		return string(letter), true
	}

	if r := ev.Rune(); r != 0 && unicode.IsPrint(r) {
		return strings.ToLower(string(r)), false
	}
	return "", false
}
