// Package keycode maps physical key codes to the characters they produce
// on a standard US layout. It is the fallback used in focusless capture,
// where the OS-composed text for a key may be missing or may reflect a
// different layout than the physical key intends.
package keycode

import "strings"

// shiftedDigits maps the digit row to its shifted symbols.
var shiftedDigits = map[string]rune{
	"Digit1": '!',
	"Digit2": '@',
	"Digit3": '#',
	"Digit4": '$',
	"Digit5": '%',
	"Digit6": '^',
	"Digit7": '&',
	"Digit8": '*',
	"Digit9": '(',
	"Digit0": ')',
}

// punctuation covers the US-layout symbol keys, unshifted and shifted.
var punctuation = map[string][2]rune{
	"Backquote":    {'`', '~'},
	"Minus":        {'-', '_'},
	"Equal":        {'=', '+'},
	"BracketLeft":  {'[', '{'},
	"BracketRight": {']', '}'},
	"Backslash":    {'\\', '|'},
	"Semicolon":    {';', ':'},
	"Quote":        {'\'', '"'},
	"Comma":        {',', '<'},
	"Period":       {'.', '>'},
	"Slash":        {'/', '?'},
}

// numpad keys produce the same character regardless of shift.
var numpad = map[string]rune{
	"NumpadAdd":      '+',
	"NumpadSubtract": '-',
	"NumpadMultiply": '*',
	"NumpadDivide":   '/',
	"NumpadDecimal":  '.',
}

// Resolve maps a physical key code and shift state to the character the key
// would produce. It returns false for keys that carry no text (navigation,
// modifiers, function keys, editing keys); those are handled structurally.
// Resolve is pure: same inputs, same output, no side effects.
func Resolve(code string, shift bool) (rune, bool) {
	switch {
	case IsLetter(code):
		r := rune(code[3])
		if !shift {
			r += 'a' - 'A'
		}
		return r, true

	case isDigit(code):
		if shift {
			return shiftedDigits[code], true
		}
		return rune(code[5]), true

	case isNumpadDigit(code):
		return rune(code[6]), true

	case code == "Space":
		return ' ', true
	}

	if r, ok := numpad[code]; ok {
		return r, true
	}

	if pair, ok := punctuation[code]; ok {
		if shift {
			return pair[1], true
		}
		return pair[0], true
	}

	return 0, false
}

// IsLetter reports whether code names a plain letter key (KeyA..KeyZ).
// The interpreter treats letter keys specially: their case always follows
// the physical shift/caps state rather than any composed ASCII text.
func IsLetter(code string) bool {
	return len(code) == 4 && strings.HasPrefix(code, "Key") &&
		code[3] >= 'A' && code[3] <= 'Z'
}

func isDigit(code string) bool {
	return len(code) == 6 && strings.HasPrefix(code, "Digit") &&
		code[5] >= '0' && code[5] <= '9'
}

func isNumpadDigit(code string) bool {
	return len(code) == 7 && strings.HasPrefix(code, "Numpad") &&
		code[6] >= '0' && code[6] <= '9'
}

// CodeFor performs the reverse lookup: the key code and shift state that
// would produce r on the standard layout. It is used by harnesses that
// synthesize key events from plain characters.
func CodeFor(r rune) (code string, shift bool, ok bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return "Key" + string(r-('a'-'A')), false, true
	case r >= 'A' && r <= 'Z':
		return "Key" + string(r), true, true
	case r >= '0' && r <= '9':
		return "Digit" + string(r), false, true
	case r == ' ':
		return "Space", false, true
	}

	for c, sym := range shiftedDigits {
		if sym == r {
			return c, true, true
		}
	}
	for c, pair := range punctuation {
		if pair[0] == r {
			return c, false, true
		}
		if pair[1] == r {
			return c, true, true
		}
	}

	return "", false, false
}
