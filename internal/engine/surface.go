package engine

import (
	"strings"
	"time"

	"crosstalk/internal/clipboard"
	"crosstalk/internal/keycode"
	"crosstalk/internal/suggest"
	"crosstalk/internal/textstate"
)

// DefaultBlinkPeriod is the caret blink half-period in focusless mode.
const DefaultBlinkPeriod = 530 * time.Millisecond

// Surface is one chat input surface: the text state, the suggestion
// session, and the key-event interpreter that drives both. All mutations
// happen synchronously inside HandleGlobalKey (or MirrorNative in ime
// mode), so callers always observe a consistent state/session pair.
//
// A Surface is owned by a single goroutine; the clipboard bridge must
// deliver paste results on that same goroutine.
type Surface struct {
	state   textstate.State
	session suggest.Session
	suggest *suggest.Engine
	bridge  clipboard.Bridge
	mode    InputMode

	blinkPeriod time.Duration
	blinkEpoch  time.Time
	now         func() time.Time
}

// NewSurface creates an empty surface in focusless mode. Either
// collaborator may be nil: a nil bridge disables clipboard shortcuts, a
// nil suggestion engine disables completion.
func NewSurface(bridge clipboard.Bridge, sugg *suggest.Engine) *Surface {
	s := &Surface{
		suggest:     sugg,
		bridge:      bridge,
		blinkPeriod: DefaultBlinkPeriod,
		now:         time.Now,
	}
	s.blinkEpoch = s.now()
	return s
}

// SetClock overrides the time source used for caret blink phase. Harness
// and test use only.
func (s *Surface) SetClock(now func() time.Time) {
	s.now = now
	s.blinkEpoch = now()
}

// SetBlinkPeriod overrides the caret blink half-period. Values <= 0 keep
// the default.
func (s *Surface) SetBlinkPeriod(period time.Duration) {
	if period > 0 {
		s.blinkPeriod = period
	}
}

// Mode returns the active acquisition strategy.
func (s *Surface) Mode() InputMode {
	return s.mode
}

// SetMode switches acquisition strategies. Content and selection are
// deliberately preserved; only which component is authoritative changes.
func (s *Surface) SetMode(mode InputMode) {
	s.mode = mode
}

// CurrentText returns the full message text.
func (s *Surface) CurrentText() string {
	return s.state.Text()
}

// CurrentSelection returns the raw (anchor, extension) selection pair.
func (s *Surface) CurrentSelection() (start, end int) {
	return s.state.Selection()
}

// Segments returns the before/selected/after projection the renderer
// draws the synthesized caret and selection from.
func (s *Surface) Segments() (before, selected, after string) {
	return s.state.Segments()
}

// Suggestions returns the current suggestion session snapshot.
func (s *Surface) Suggestions() suggest.Session {
	return s.session
}

// Focus moves the caret to the end of the content, for when the surface
// becomes the active typing target.
func (s *Surface) Focus() {
	s.state = s.state.MoveToBoundary(true, false)
	s.refresh()
}

// Reset clears content and selection, for when the active chat scope
// changes.
func (s *Surface) Reset() {
	s.state = textstate.Empty()
	s.refresh()
}

// MirrorNative replaces the surface state with a native field's reported
// value and selection. This is the mutation path for ime mode; the
// suggestion engine still runs against the mirrored state.
func (s *Surface) MirrorNative(value string, selStart, selEnd int) {
	s.state = textstate.FromString(value).SetSelection(selStart, selEnd)
	s.refresh()
}

// CaretVisible reports whether the blinking caret should be drawn at the
// given instant. The blink is purely cosmetic; its phase restarts on
// every edit so the caret stays solid while the user types. With a
// non-empty selection there is no caret to draw.
func (s *Surface) CaretVisible(at time.Time) bool {
	lo, hi := s.state.Normalized()
	if lo != hi {
		return false
	}
	if !at.After(s.blinkEpoch) {
		return true
	}
	return (at.Sub(s.blinkEpoch)/s.blinkPeriod)%2 == 0
}

// HandleGlobalKey interprets one global key event. Only key-down events
// in focusless mode mutate anything; everything else reports OutcomeNone.
// Unrecognized code/modifier combinations fall through every branch as
// no-ops, never as errors.
func (s *Surface) HandleGlobalKey(ev GlobalKeyEvent) Outcome {
	if ev.Phase != PhaseDown || s.mode != ModeFocusless {
		return OutcomeNone
	}

	if (ev.Ctrl || ev.Meta) && !ev.Alt {
		s.handleClipboard(ev.Code)
		// Plain ctrl/meta chords belong to the OS, not the buffer.
		// Ctrl+Alt falls through: that is how AltGr arrives on Windows.
		return OutcomeNone
	}

	if outcome, handled := s.handleStructural(ev); handled {
		return outcome
	}

	s.handleText(ev)
	return OutcomeNone
}

// handleClipboard applies the select-all/copy/cut/paste shortcuts. The
// event counts as consumed regardless of whether the bridge call
// succeeds.
func (s *Surface) handleClipboard(code string) bool {
	switch code {
	case "KeyA":
		s.state = s.state.SelectAll()
		s.refresh()
	case "KeyC":
		s.copySelection()
	case "KeyX":
		s.copySelection()
		if lo, hi := s.state.Normalized(); lo != hi {
			s.state = s.state.ReplaceSelection("")
			s.refresh()
		}
	case "KeyV":
		if s.bridge != nil {
			s.bridge.ReadText(s.completePaste)
		}
	default:
		return false
	}
	return true
}

func (s *Surface) copySelection() {
	if s.bridge == nil {
		return
	}
	if text := s.state.SelectedText(); text != "" {
		// Failures are swallowed; copy is best effort.
		_ = s.bridge.WriteText(text)
	}
}

// completePaste runs when the clipboard read resolves, possibly long
// after the triggering event. The text lands at whatever selection is
// current at that moment: last write wins, no stale-selection guard.
func (s *Surface) completePaste(text string, err error) {
	if err != nil {
		return
	}
	text = sanitizeClipboardText(text)
	if text == "" {
		return
	}
	s.state = s.state.ReplaceSelection(text)
	s.refresh()
}

func (s *Surface) handleStructural(ev GlobalKeyEvent) (Outcome, bool) {
	if ev.Alt {
		return OutcomeNone, false
	}

	switch ev.Code {
	case "Escape":
		return OutcomeCancel, true
	case "Enter", "NumpadEnter":
		return OutcomeSubmit, true
	case "Backspace":
		s.state = s.state.DeleteBackward()
		s.refresh()
	case "Delete":
		s.state = s.state.DeleteForward()
		s.refresh()
	case "ArrowLeft":
		s.state = s.state.MoveCaret(-1, ev.Shift)
		s.refresh()
	case "ArrowRight":
		s.state = s.state.MoveCaret(1, ev.Shift)
		s.refresh()
	case "Home":
		s.state = s.state.MoveToBoundary(false, ev.Shift)
		s.refresh()
	case "End":
		s.state = s.state.MoveToBoundary(true, ev.Shift)
		s.refresh()
	case "ArrowUp":
		// Suggestion navigation wins over caret movement; the buffer is
		// single line so there is nowhere else for the caret to go.
		if s.session.Visible {
			s.session = s.session.Prev()
		}
	case "ArrowDown":
		if s.session.Visible {
			s.session = s.session.Next()
		}
	case "Tab":
		if s.session.Visible {
			s.AcceptSuggestion()
		}
	default:
		return OutcomeNone, false
	}
	return OutcomeNone, true
}

// SuggestNext advances the highlighted suggestion, wrapping past the
// end. No-op when the popup is closed.
func (s *Surface) SuggestNext() {
	if s.session.Visible {
		s.session = s.session.Next()
	}
}

// SuggestPrev moves the highlight backward, wrapping past the start.
func (s *Surface) SuggestPrev() {
	if s.session.Visible {
		s.session = s.session.Prev()
	}
}

// AcceptSuggestion inserts the active suggestion at the current word and
// closes the session. No-op when nothing is highlighted.
func (s *Surface) AcceptSuggestion() {
	active := s.session.Active()
	if active == nil {
		return
	}
	s.state = suggest.Insert(s.state, active)
	s.refresh()
}

// handleText turns the event into inserted text. Composed text from the
// OS layout is preferred when usable, except for plain letter keys where
// the table's shift/caps-aware case wins over ASCII composed text. With
// no usable text the table resolver decides; keys it does not know are
// no-ops.
func (s *Surface) handleText(ev GlobalKeyEvent) {
	composed := sanitizeComposedText(ev.Text)

	if keycode.IsLetter(ev.Code) {
		if composed != "" && !isASCII(composed) {
			s.insert(composed)
			return
		}
		if ev.Alt {
			// AltGr chords only type what the OS composed for them.
			if composed != "" {
				s.insert(composed)
			}
			return
		}
		effectiveShift := ev.Shift != ev.capsActive()
		if r, ok := keycode.Resolve(ev.Code, effectiveShift); ok {
			s.insert(string(r))
		}
		return
	}

	if composed != "" {
		s.insert(composed)
		return
	}
	if ev.Alt {
		return
	}
	if r, ok := keycode.Resolve(ev.Code, ev.Shift); ok {
		s.insert(string(r))
	}
}

func (s *Surface) insert(text string) {
	s.state = s.state.ReplaceSelection(text)
	s.refresh()
}

// refresh recomputes suggestions and restarts the caret blink phase. It
// runs after every content or selection change, before control returns
// to the caller, so suggestion visibility is always in step with the
// state that produced it.
func (s *Surface) refresh() {
	if s.suggest != nil {
		s.session = s.suggest.Recompute(s.state)
	} else {
		s.session = suggest.Session{}
	}
	s.blinkEpoch = s.now()
}

// sanitizeClipboardText flattens pasted text into the single-line buffer:
// carriage returns vanish, newlines and tabs become spaces, any other
// control character is dropped.
func sanitizeClipboardText(text string) string {
	text = strings.ReplaceAll(text, "\r", "")
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\n' || r == '\t':
			b.WriteRune(' ')
		case r < 0x20 || r == 0x7f:
			// dropped
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
