// Package suggest detects in-progress mention and emoji tokens in the
// input buffer and produces ranked candidates. Sessions are ephemeral:
// every content or selection change recomputes the candidate set from
// scratch, so a stale active index is never carried across updates.
package suggest

import (
	"strings"
	"unicode"

	"crosstalk/internal/emoji"
	"crosstalk/internal/textstate"
)

// Suggestion is one completion candidate: either a user mention or an
// emoji shortcode. The concrete types are Mention and Emoji; consumers
// switch on them exhaustively.
type Suggestion interface {
	// Label is the text shown in the suggestion list.
	Label() string
	// Insertion is the text that replaces the current word when the
	// suggestion is accepted. A trailing space is always appended.
	Insertion() string

	suggestion()
}

// Mention completes an @username token.
type Mention struct {
	Username string
}

func (m Mention) Label() string     { return "@" + m.Username }
func (m Mention) Insertion() string { return "@" + m.Username + " " }
func (Mention) suggestion()         {}

// Emoji completes a :shortcode token into its glyph.
type Emoji struct {
	Shortcode string
	Glyph     string
}

func (e Emoji) Label() string     { return e.Glyph + " :" + e.Shortcode + ":" }
func (e Emoji) Insertion() string { return e.Glyph + " " }
func (Emoji) suggestion()         {}

// Session is the current candidate list with the active (highlighted)
// index. ActiveIndex is always in [0, len(Candidates)) while Visible.
type Session struct {
	Candidates  []Suggestion
	ActiveIndex int
	Visible     bool
}

// Active returns the highlighted candidate, or nil when the session is
// hidden or empty.
func (s Session) Active() Suggestion {
	if !s.Visible || s.ActiveIndex < 0 || s.ActiveIndex >= len(s.Candidates) {
		return nil
	}
	return s.Candidates[s.ActiveIndex]
}

// Next advances the active index, wrapping around. No-op when empty.
func (s Session) Next() Session {
	if len(s.Candidates) > 0 {
		s.ActiveIndex = (s.ActiveIndex + 1) % len(s.Candidates)
	}
	return s
}

// Prev moves the active index back, wrapping around. No-op when empty.
func (s Session) Prev() Session {
	if len(s.Candidates) > 0 {
		s.ActiveIndex = (s.ActiveIndex - 1 + len(s.Candidates)) % len(s.Candidates)
	}
	return s
}

// UsernameSource supplies the known usernames, most relevant first. The
// caller derives these from recently observed chat messages.
type UsernameSource interface {
	Usernames() []string
}

// UsernameFunc adapts a plain function to a UsernameSource.
type UsernameFunc func() []string

func (f UsernameFunc) Usernames() []string { return f() }

// Engine computes suggestion sessions against a username source and a
// static emoji table.
type Engine struct {
	usernames UsernameSource
	emoji     *emoji.Table
}

// NewEngine creates a suggestion engine. Either source may be nil, which
// disables the corresponding trigger.
func NewEngine(usernames UsernameSource, table *emoji.Table) *Engine {
	return &Engine{usernames: usernames, emoji: table}
}

// Recompute builds a fresh session for the given editing state. The
// current word is the last whitespace-delimited token before the caret;
// an @ prefix triggers mention candidates, a : prefix triggers emoji
// candidates. The active index always restarts at 0.
func (e *Engine) Recompute(st textstate.State) Session {
	word := currentWord(st)

	switch {
	case strings.HasPrefix(word, "@"):
		return newSession(e.mentionCandidates(word[1:]))
	case strings.HasPrefix(word, ":"):
		return newSession(e.emojiCandidates(word[1:]))
	}
	return Session{}
}

func newSession(candidates []Suggestion) Session {
	return Session{Candidates: candidates, Visible: len(candidates) > 0}
}

func (e *Engine) mentionCandidates(query string) []Suggestion {
	if e.usernames == nil {
		return nil
	}

	query = strings.ToLower(query)
	var candidates []Suggestion
	for _, name := range e.usernames.Usernames() {
		if strings.HasPrefix(strings.ToLower(name), query) {
			candidates = append(candidates, Mention{Username: name})
		}
	}
	return candidates
}

func (e *Engine) emojiCandidates(query string) []Suggestion {
	if e.emoji == nil {
		return nil
	}

	var candidates []Suggestion
	for _, entry := range e.emoji.Prefix(query) {
		candidates = append(candidates, Emoji{Shortcode: entry.Shortcode, Glyph: entry.Glyph})
	}
	return candidates
}

// Insert replaces the current word through the caret with the accepted
// suggestion's insertion text and collapses the caret after it. The
// caller closes the session; insertion on an empty candidate set is the
// caller's bug and this function only guards the state math.
func Insert(st textstate.State, sug Suggestion) textstate.State {
	if sug == nil {
		return st
	}

	caret := caretOf(st)
	start := wordStart(st, caret)
	return st.SetSelection(start, caret).ReplaceSelection(sug.Insertion())
}

// currentWord returns the token ending at the caret, bounded by the
// nearest preceding whitespace or the buffer start.
func currentWord(st textstate.State) string {
	caret := caretOf(st)
	text := []rune(st.Text())
	return string(text[wordStart(st, caret):caret])
}

// caretOf is the effective caret for trigger detection: the larger edge
// of the selection.
func caretOf(st textstate.State) int {
	_, hi := st.Normalized()
	return hi
}

func wordStart(st textstate.State, caret int) int {
	text := []rune(st.Text())
	start := caret
	for start > 0 && !unicode.IsSpace(text[start-1]) {
		start--
	}
	return start
}
