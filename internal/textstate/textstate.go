// Package textstate holds the authoritative editing state for a synthesized
// input surface: the message content plus the caret/selection range. All
// operations are pure transformations producing a new State, and every
// result re-clamps the selection into content bounds. Offsets are rune
// offsets, never byte offsets.
package textstate

// State is the current text content and selection. SelStart and SelEnd are
// kept in the order the user produced them: SelStart is the anchor and
// SelEnd the extension point, so SelStart may be greater than SelEnd. Edit
// operations work on the normalized (min, max) pair.
type State struct {
	content  []rune
	selStart int
	selEnd   int
}

// Empty returns a State with no content and a collapsed selection at 0.
func Empty() State {
	return State{}
}

// FromString builds a State with the caret collapsed at the end of text.
// Used when mirroring a native field or seeding tests.
func FromString(text string) State {
	content := []rune(text)
	return State{content: content, selStart: len(content), selEnd: len(content)}
}

// Text returns the full content as a string.
func (s State) Text() string {
	return string(s.content)
}

// Len returns the content length in runes.
func (s State) Len() int {
	return len(s.content)
}

// Selection returns the raw (anchor, extension) pair, unnormalized.
func (s State) Selection() (start, end int) {
	return s.selStart, s.selEnd
}

// Normalized returns the selection reordered so start <= end.
func (s State) Normalized() (start, end int) {
	if s.selStart > s.selEnd {
		return s.selEnd, s.selStart
	}
	return s.selStart, s.selEnd
}

// Caret returns the active caret position: the extension point of the
// selection.
func (s State) Caret() int {
	return s.selEnd
}

// Segments splits the content at the normalized selection into the three
// pieces a renderer needs to draw a synthesized caret and selection.
func (s State) Segments() (before, selected, after string) {
	lo, hi := s.Normalized()
	return string(s.content[:lo]), string(s.content[lo:hi]), string(s.content[hi:])
}

// SelectedText returns the text inside the normalized selection.
func (s State) SelectedText() string {
	lo, hi := s.Normalized()
	return string(s.content[lo:hi])
}

func (s State) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(s.content) {
		return len(s.content)
	}
	return offset
}

// SetSelection sets the raw selection pair, clamping both offsets into
// content bounds. The pair is stored as given; order encodes direction.
func (s State) SetSelection(start, end int) State {
	s.selStart = s.clamp(start)
	s.selEnd = s.clamp(end)
	return s
}

// ReplaceSelection deletes the normalized selected range and inserts text
// at that position. The selection collapses to just after the inserted
// text.
func (s State) ReplaceSelection(text string) State {
	lo, hi := s.Normalized()
	lo, hi = s.clamp(lo), s.clamp(hi)

	insert := []rune(text)
	content := make([]rune, 0, len(s.content)-(hi-lo)+len(insert))
	content = append(content, s.content[:lo]...)
	content = append(content, insert...)
	content = append(content, s.content[hi:]...)

	caret := lo + len(insert)
	return State{content: content, selStart: caret, selEnd: caret}
}

// DeleteBackward removes the selection if one exists, otherwise the rune
// before the caret. No-op with a collapsed selection at position 0.
func (s State) DeleteBackward() State {
	lo, hi := s.Normalized()
	if lo != hi {
		return s.ReplaceSelection("")
	}
	if lo == 0 {
		return s
	}
	return s.SetSelection(lo-1, lo).ReplaceSelection("")
}

// DeleteForward removes the selection if one exists, otherwise the rune
// after the caret. No-op with a collapsed selection at the end.
func (s State) DeleteForward() State {
	lo, hi := s.Normalized()
	if lo != hi {
		return s.ReplaceSelection("")
	}
	if lo >= len(s.content) {
		return s
	}
	return s.SetSelection(lo, lo+1).ReplaceSelection("")
}

// MoveCaret moves the caret by delta runes. Without extend, a non-empty
// selection collapses to its edge in the direction of travel instead of
// moving: one keypress is one logical step. With extend, only the
// extension point moves and the anchor stays put.
func (s State) MoveCaret(delta int, extend bool) State {
	lo, hi := s.Normalized()
	if !extend && lo != hi {
		if delta < 0 {
			return s.SetSelection(lo, lo)
		}
		return s.SetSelection(hi, hi)
	}

	end := s.clamp(s.selEnd + delta)
	if extend {
		return s.SetSelection(s.selStart, end)
	}
	return s.SetSelection(end, end)
}

// MoveToBoundary jumps the caret to the start or end of the content. With
// extend, the anchor stays at the current selection start.
func (s State) MoveToBoundary(toEnd, extend bool) State {
	pos := 0
	if toEnd {
		pos = len(s.content)
	}
	if extend {
		return s.SetSelection(s.selStart, pos)
	}
	return s.SetSelection(pos, pos)
}

// SelectAll selects the entire content.
func (s State) SelectAll() State {
	return s.SetSelection(0, len(s.content))
}
