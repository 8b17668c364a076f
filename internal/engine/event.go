package engine

import "strings"

// Phase is the transition direction of a key event.
type Phase int

const (
	PhaseDown Phase = iota
	PhaseUp
)

// GlobalKeyEvent is a platform-delivered key event observed without owning
// input focus. It is immutable once received; the engine consumes it
// read-only. Code is the semantic physical-key identifier (KeyA, Digit1,
// ArrowLeft, NumpadEnter, ...). Text is the OS-composed string for the
// key, empty when the platform could not compose one.
type GlobalKeyEvent struct {
	Code  string
	Text  string
	Phase Phase

	Ctrl  bool
	Shift bool
	Alt   bool
	Meta  bool

	// Caps is nil when the platform cannot report caps-lock state.
	// Unknown is treated as not active.
	Caps *bool

	Repeat      bool
	TimestampMs int64
}

// capsActive resolves the optional caps-lock state.
func (ev GlobalKeyEvent) capsActive() bool {
	return ev.Caps != nil && *ev.Caps
}

// Outcome is the high-level result of handling one key event. The
// surrounding application owns what submit and cancel actually do.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSubmit
	OutcomeCancel
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSubmit:
		return "submit"
	case OutcomeCancel:
		return "cancel"
	default:
		return "none"
	}
}

// InputMode selects the acquisition strategy for the input surface.
type InputMode int

const (
	// ModeFocusless synthesizes editing from global key observation; the
	// engine is the sole source of truth for the text state.
	ModeFocusless InputMode = iota
	// ModeIME mirrors a native composed text field that owns real focus.
	ModeIME
)

// ParseInputMode parses a mode setting leniently: "ime" selects the
// native-field strategy, anything else falls back to focusless.
func ParseInputMode(value string) InputMode {
	if strings.TrimSpace(strings.ToLower(value)) == "ime" {
		return ModeIME
	}
	return ModeFocusless
}

func (m InputMode) String() string {
	if m == ModeIME {
		return "ime"
	}
	return "focusless"
}

// sanitizeComposedText normalizes the OS-composed string for insertion:
// carriage returns are stripped, and any remaining control character
// disqualifies the text entirely.
func sanitizeComposedText(text string) string {
	text = strings.ReplaceAll(text, "\r", "")
	if text == "" {
		return ""
	}
	for _, r := range text {
		if r < 0x20 || r == 0x7f {
			return ""
		}
	}
	return text
}

// isASCII reports whether text is pure ASCII. Composed text for a letter
// key only overrides the table resolver when it is non-ASCII, so
// non-Latin layouts survive while Latin case follows the physical shift
// state.
func isASCII(text string) bool {
	for _, r := range text {
		if r > 0x7f {
			return false
		}
	}
	return true
}
