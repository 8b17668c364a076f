package tui

import (
	"time"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"crosstalk/internal/engine"
	"crosstalk/internal/keycode"
)

// structuralCodes maps terminal key names to the key codes a global
// hook would report for the same physical keys.
var structuralCodes = map[string]string{
	"enter":     "Enter",
	"esc":       "Escape",
	"backspace": "Backspace",
	"delete":    "Delete",
	"left":      "ArrowLeft",
	"right":     "ArrowRight",
	"up":        "ArrowUp",
	"down":      "ArrowDown",
	"home":      "Home",
	"end":       "End",
	"tab":       "Tab",
}

// clipboardCodes maps the terminal chords that stand in for the global
// clipboard shortcuts.
var clipboardCodes = map[string]string{
	"ctrl+a": "KeyA",
	"ctrl+y": "KeyC",
	"ctrl+x": "KeyX",
	"ctrl+v": "KeyV",
}

// translateKeyMsg converts a terminal key press into the global key
// events the surface consumes. A paste or multi-rune input yields one
// event per rune. Keys with no global equivalent yield nothing.
//
// Terminals cannot report a copy chord (ctrl+c is the conventional
// quit), so ctrl+y stands in for copy here. The surface itself only
// ever sees the canonical KeyC.
func translateKeyMsg(msg tea.KeyMsg) []engine.GlobalKeyEvent {
	now := time.Now().UnixMilli()
	name := msg.String()

	if code, ok := clipboardCodes[name]; ok {
		return []engine.GlobalKeyEvent{{
			Code:        code,
			Phase:       engine.PhaseDown,
			Ctrl:        true,
			TimestampMs: now,
		}}
	}

	base, shifted := name, false
	if len(name) > 6 && name[:6] == "shift+" {
		base, shifted = name[6:], true
	}
	if code, ok := structuralCodes[base]; ok {
		return []engine.GlobalKeyEvent{{
			Code:        code,
			Phase:       engine.PhaseDown,
			Shift:       shifted,
			TimestampMs: now,
		}}
	}

	if msg.Type != tea.KeyRunes && msg.Type != tea.KeySpace {
		return nil
	}

	runes := msg.Runes
	if msg.Type == tea.KeySpace {
		runes = []rune{' '}
	}

	events := make([]engine.GlobalKeyEvent, 0, len(runes))
	for _, r := range runes {
		ev := engine.GlobalKeyEvent{
			Phase:       engine.PhaseDown,
			Text:        string(r),
			TimestampMs: now,
		}
		if code, shift, ok := keycode.CodeFor(r); ok {
			ev.Code = code
			ev.Shift = shift
		} else if unicode.IsUpper(r) {
			// Uppercase letters outside the table still imply shift.
			ev.Shift = true
		}
		events = append(events, ev)
	}
	return events
}
