package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crosstalk/internal/emoji"
	"crosstalk/internal/suggest"
)

// fakeBridge records writes and lets tests defer paste delivery to model
// the clipboard read resolving after later edits.
type fakeBridge struct {
	written []string
	pending []func(text string, err error)

	writeErr error
}

func (f *fakeBridge) WriteText(text string) error {
	f.written = append(f.written, text)
	return f.writeErr
}

func (f *fakeBridge) ReadText(deliver func(text string, err error)) {
	f.pending = append(f.pending, deliver)
}

func (f *fakeBridge) resolve(text string, err error) {
	deliver := f.pending[0]
	f.pending = f.pending[1:]
	deliver(text, err)
}

func newTestSurface() (*Surface, *fakeBridge) {
	bridge := &fakeBridge{}
	users := suggest.UsernameFunc(func() []string {
		return []string{"alice", "albert", "bob"}
	})
	table := emoji.NewTable([]emoji.Entry{
		{Shortcode: "fire", Glyph: "🔥"},
		{Shortcode: "heart", Glyph: "❤️"},
	})
	return NewSurface(bridge, suggest.NewEngine(users, table)), bridge
}

func down(code string) GlobalKeyEvent {
	return GlobalKeyEvent{Code: code, Phase: PhaseDown}
}

func downShift(code string) GlobalKeyEvent {
	ev := down(code)
	ev.Shift = true
	return ev
}

func typeText(t *testing.T, s *Surface, text string) {
	t.Helper()
	for _, r := range text {
		ev, ok := eventFor(r)
		require.True(t, ok, string(r))
		assert.Equal(t, OutcomeNone, s.HandleGlobalKey(ev))
	}
}

func eventFor(r rune) (GlobalKeyEvent, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return down("Key" + string(r-32)), true
	case r >= 'A' && r <= 'Z':
		return downShift("Key" + string(r)), true
	case r >= '0' && r <= '9':
		return down("Digit" + string(r)), true
	case r == ' ':
		return down("Space"), true
	case r == '@':
		return downShift("Digit2"), true
	case r == ':':
		return downShift("Semicolon"), true
	}
	return GlobalKeyEvent{}, false
}

func TestTypingEndToEnd(t *testing.T) {
	s, _ := newTestSurface()

	for _, ev := range []GlobalKeyEvent{
		downShift("KeyH"),
		down("KeyI"),
		down("Space"),
		down("Digit1"),
	} {
		assert.Equal(t, OutcomeNone, s.HandleGlobalKey(ev))
	}

	assert.Equal(t, "Hi 1", s.CurrentText())
	start, end := s.CurrentSelection()
	assert.Equal(t, 4, start)
	assert.Equal(t, 4, end)

	assert.Equal(t, OutcomeSubmit, s.HandleGlobalKey(down("Enter")))
	assert.Equal(t, "Hi 1", s.CurrentText())
}

func TestKeyUpAndImeModeAreIgnored(t *testing.T) {
	s, _ := newTestSurface()

	up := down("KeyA")
	up.Phase = PhaseUp
	assert.Equal(t, OutcomeNone, s.HandleGlobalKey(up))
	assert.Equal(t, "", s.CurrentText())

	s.SetMode(ModeIME)
	assert.Equal(t, OutcomeNone, s.HandleGlobalKey(down("KeyA")))
	assert.Equal(t, OutcomeNone, s.HandleGlobalKey(down("Enter")))
	assert.Equal(t, "", s.CurrentText())
}

func TestOutcomes(t *testing.T) {
	s, _ := newTestSurface()

	assert.Equal(t, OutcomeCancel, s.HandleGlobalKey(down("Escape")))
	assert.Equal(t, OutcomeSubmit, s.HandleGlobalKey(down("NumpadEnter")))

	// Modified Enter is not a submit.
	ev := down("Enter")
	ev.Ctrl = true
	assert.Equal(t, OutcomeNone, s.HandleGlobalKey(ev))
}

func TestCapsLockCasing(t *testing.T) {
	s, _ := newTestSurface()
	caps := true

	ev := down("KeyA")
	ev.Caps = &caps
	s.HandleGlobalKey(ev)

	ev = downShift("KeyB")
	ev.Caps = &caps
	s.HandleGlobalKey(ev)

	// Caps unknown: assume not active.
	s.HandleGlobalKey(down("KeyC"))

	assert.Equal(t, "Abc", s.CurrentText())
}

func TestComposedTextPolicy(t *testing.T) {
	s, _ := newTestSurface()

	// Non-ASCII composed text wins even on a letter key.
	ev := down("KeyA")
	ev.Text = "é"
	s.HandleGlobalKey(ev)
	assert.Equal(t, "é", s.CurrentText())

	// ASCII composed text on a letter key loses to the table's casing.
	ev = downShift("KeyB")
	ev.Text = "b"
	s.HandleGlobalKey(ev)
	assert.Equal(t, "éB", s.CurrentText())

	// Non-letter keys take the composed text as is.
	ev = down("Equal")
	ev.Text = "€"
	s.HandleGlobalKey(ev)
	assert.Equal(t, "éB€", s.CurrentText())

	// Composed text with control characters is rejected; the table
	// resolver takes over.
	ev = down("Slash")
	ev.Text = "/\x1b"
	s.HandleGlobalKey(ev)
	assert.Equal(t, "éB€/", s.CurrentText())
}

func TestEditingKeys(t *testing.T) {
	s, _ := newTestSurface()
	typeText(t, s, "hello")

	s.HandleGlobalKey(down("Backspace"))
	assert.Equal(t, "hell", s.CurrentText())

	s.HandleGlobalKey(down("Home"))
	s.HandleGlobalKey(down("Delete"))
	assert.Equal(t, "ell", s.CurrentText())

	s.HandleGlobalKey(down("ArrowRight"))
	s.HandleGlobalKey(downShift("End"))
	before, selected, after := s.Segments()
	assert.Equal(t, "e", before)
	assert.Equal(t, "ll", selected)
	assert.Equal(t, "", after)

	s.HandleGlobalKey(down("Backspace"))
	assert.Equal(t, "e", s.CurrentText())
}

func TestShiftArrowExtendsSelection(t *testing.T) {
	s, _ := newTestSurface()
	typeText(t, s, "abc")

	s.HandleGlobalKey(downShift("ArrowLeft"))
	s.HandleGlobalKey(downShift("ArrowLeft"))
	start, end := s.CurrentSelection()
	assert.Equal(t, 3, start)
	assert.Equal(t, 1, end)

	// Collapse toward the left edge.
	s.HandleGlobalKey(down("ArrowLeft"))
	start, end = s.CurrentSelection()
	assert.Equal(t, 1, start)
	assert.Equal(t, 1, end)
}

func TestFunctionAndModifierKeysAreNoOps(t *testing.T) {
	s, _ := newTestSurface()

	for _, code := range []string{"F1", "F12", "ShiftLeft", "ControlRight", "CapsLock", "NumLock", "PageDown"} {
		assert.Equal(t, OutcomeNone, s.HandleGlobalKey(down(code)))
	}
	assert.Equal(t, "", s.CurrentText())
}

func TestSelectAllCopyAndCut(t *testing.T) {
	s, bridge := newTestSurface()
	typeText(t, s, "hello")

	chord := down("KeyA")
	chord.Ctrl = true
	s.HandleGlobalKey(chord)
	start, end := s.CurrentSelection()
	assert.Equal(t, 0, start)
	assert.Equal(t, 5, end)

	chord = down("KeyC")
	chord.Ctrl = true
	s.HandleGlobalKey(chord)
	require.Equal(t, []string{"hello"}, bridge.written)
	assert.Equal(t, "hello", s.CurrentText())

	chord = down("KeyX")
	chord.Meta = true
	s.HandleGlobalKey(chord)
	assert.Equal(t, []string{"hello", "hello"}, bridge.written)
	assert.Equal(t, "", s.CurrentText())

	// Copy with an empty selection does not touch the bridge.
	chord = down("KeyC")
	chord.Ctrl = true
	s.HandleGlobalKey(chord)
	assert.Len(t, bridge.written, 2)
}

func TestCutStillMutatesWhenWriteFails(t *testing.T) {
	s, bridge := newTestSurface()
	bridge.writeErr = errors.New("clipboard gone")
	typeText(t, s, "abc")

	chord := down("KeyA")
	chord.Ctrl = true
	s.HandleGlobalKey(chord)
	chord = down("KeyX")
	chord.Ctrl = true
	assert.Equal(t, OutcomeNone, s.HandleGlobalKey(chord))
	assert.Equal(t, "", s.CurrentText())
}

func TestPasteInsertsAtSelection(t *testing.T) {
	s, bridge := newTestSurface()
	typeText(t, s, "ab")

	chord := down("KeyV")
	chord.Ctrl = true
	s.HandleGlobalKey(chord)
	bridge.resolve("cd", nil)

	assert.Equal(t, "abcd", s.CurrentText())
}

func TestPasteResolvesAtCurrentSelection(t *testing.T) {
	s, bridge := newTestSurface()
	typeText(t, s, "abcd")

	// Issue the paste, then move the caret before the read resolves.
	chord := down("KeyV")
	chord.Ctrl = true
	s.HandleGlobalKey(chord)
	s.HandleGlobalKey(down("Home"))
	bridge.resolve("XY", nil)

	// Last write wins: the paste lands where the selection is now, not
	// where it was when the read was issued.
	assert.Equal(t, "XYabcd", s.CurrentText())
}

func TestPasteFailuresAreSwallowed(t *testing.T) {
	s, bridge := newTestSurface()
	typeText(t, s, "ab")

	chord := down("KeyV")
	chord.Ctrl = true
	s.HandleGlobalKey(chord)
	bridge.resolve("", errors.New("read failed"))
	assert.Equal(t, "ab", s.CurrentText())

	s.HandleGlobalKey(chord)
	bridge.resolve("", nil)
	assert.Equal(t, "ab", s.CurrentText())
}

func TestPasteFlattensMultilineText(t *testing.T) {
	s, bridge := newTestSurface()

	chord := down("KeyV")
	chord.Ctrl = true
	s.HandleGlobalKey(chord)
	bridge.resolve("one\r\ntwo\tthree\x00", nil)

	assert.Equal(t, "one two three", s.CurrentText())
}

func TestSuggestionNavigation(t *testing.T) {
	s, _ := newTestSurface()
	typeText(t, s, "@al")

	session := s.Suggestions()
	require.True(t, session.Visible)
	require.Len(t, session.Candidates, 2)
	assert.Equal(t, 0, session.ActiveIndex)

	s.HandleGlobalKey(down("ArrowDown"))
	assert.Equal(t, 1, s.Suggestions().ActiveIndex)
	s.HandleGlobalKey(down("ArrowDown"))
	assert.Equal(t, 0, s.Suggestions().ActiveIndex)
	s.HandleGlobalKey(down("ArrowUp"))
	assert.Equal(t, 1, s.Suggestions().ActiveIndex)

	// Typing recomputes candidates and resets the active index.
	typeText(t, s, "b")
	session = s.Suggestions()
	require.Len(t, session.Candidates, 1)
	assert.Equal(t, 0, session.ActiveIndex)
	assert.Equal(t, suggest.Mention{Username: "albert"}, session.Candidates[0])
}

func TestTabInsertsActiveSuggestion(t *testing.T) {
	s, _ := newTestSurface()
	typeText(t, s, "hello @al")

	s.HandleGlobalKey(down("Tab"))
	assert.Equal(t, "hello @alice ", s.CurrentText())
	start, end := s.CurrentSelection()
	assert.Equal(t, 13, start)
	assert.Equal(t, 13, end)
	assert.False(t, s.Suggestions().Visible)
}

func TestTabWithoutSuggestionsIsNoOp(t *testing.T) {
	s, _ := newTestSurface()
	typeText(t, s, "hello")

	s.HandleGlobalKey(down("Tab"))
	assert.Equal(t, "hello", s.CurrentText())
}

func TestArrowsMoveCaretWhenSuggestionsHidden(t *testing.T) {
	s, _ := newTestSurface()
	typeText(t, s, "hi")

	s.HandleGlobalKey(down("ArrowUp"))
	s.HandleGlobalKey(down("ArrowDown"))
	start, end := s.CurrentSelection()
	assert.Equal(t, 2, start)
	assert.Equal(t, 2, end)
}

func TestEmojiSuggestionInsert(t *testing.T) {
	s, _ := newTestSurface()
	typeText(t, s, "gg :hea")

	require.True(t, s.Suggestions().Visible)
	s.HandleGlobalKey(down("Tab"))
	assert.Equal(t, "gg ❤️ ", s.CurrentText())
}

func TestFocusAndReset(t *testing.T) {
	s, _ := newTestSurface()
	typeText(t, s, "hello")
	s.HandleGlobalKey(down("Home"))

	s.Focus()
	start, end := s.CurrentSelection()
	assert.Equal(t, 5, start)
	assert.Equal(t, 5, end)

	s.Reset()
	assert.Equal(t, "", s.CurrentText())
	assert.False(t, s.Suggestions().Visible)
}

func TestModeSwitchPreservesState(t *testing.T) {
	s, _ := newTestSurface()
	typeText(t, s, "draft")

	s.SetMode(ModeIME)
	assert.Equal(t, "draft", s.CurrentText())
	s.SetMode(ModeFocusless)
	assert.Equal(t, "draft", s.CurrentText())
}

func TestMirrorNativeDrivesSuggestions(t *testing.T) {
	s, _ := newTestSurface()
	s.SetMode(ModeIME)

	s.MirrorNative("hey @bo", 7, 7)
	assert.Equal(t, "hey @bo", s.CurrentText())
	session := s.Suggestions()
	require.True(t, session.Visible)
	assert.Equal(t, suggest.Mention{Username: "bob"}, session.Candidates[0])

	// Out-of-range offsets from the native field are clamped silently.
	s.MirrorNative("ok", 5, 9)
	start, end := s.CurrentSelection()
	assert.Equal(t, 2, start)
	assert.Equal(t, 2, end)
}

func TestCaretBlink(t *testing.T) {
	s, _ := newTestSurface()
	base := time.Unix(1000, 0)
	now := base
	s.SetClock(func() time.Time { return now })
	s.SetBlinkPeriod(100 * time.Millisecond)

	assert.True(t, s.CaretVisible(base.Add(50*time.Millisecond)))
	assert.False(t, s.CaretVisible(base.Add(150*time.Millisecond)))
	assert.True(t, s.CaretVisible(base.Add(250*time.Millisecond)))

	// An edit restarts the phase so the caret is solid while typing.
	now = base.Add(140 * time.Millisecond)
	s.HandleGlobalKey(down("KeyA"))
	assert.True(t, s.CaretVisible(now.Add(50*time.Millisecond)))

	// No caret while a selection is showing.
	chord := down("KeyA")
	chord.Ctrl = true
	s.HandleGlobalKey(chord)
	assert.False(t, s.CaretVisible(now.Add(50*time.Millisecond)))
}

func TestRepeatEventsEditNormally(t *testing.T) {
	s, _ := newTestSurface()

	ev := down("KeyA")
	ev.Repeat = true
	s.HandleGlobalKey(ev)
	s.HandleGlobalKey(ev)
	s.HandleGlobalKey(ev)
	assert.Equal(t, "aaa", s.CurrentText())
}

func TestParseInputMode(t *testing.T) {
	assert.Equal(t, ModeIME, ParseInputMode("ime"))
	assert.Equal(t, ModeIME, ParseInputMode("  IME "))
	assert.Equal(t, ModeFocusless, ParseInputMode("focusless"))
	assert.Equal(t, ModeFocusless, ParseInputMode("anything"))
	assert.Equal(t, ModeFocusless, ParseInputMode(""))
}
