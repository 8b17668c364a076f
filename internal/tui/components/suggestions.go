package components

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"crosstalk/internal/suggest"
)

type SuggestionsComponent struct {
	items    []suggest.Suggestion
	selected int
	height   int
	width    int
}

func NewSuggestionsComponent(items []suggest.Suggestion, selected int, width int) SuggestionsComponent {
	maxHeight := 8 // Maximum popup window height
	height := len(items)
	if height > maxHeight {
		height = maxHeight
	}

	return SuggestionsComponent{
		items:    items,
		selected: selected,
		height:   height,
		width:    width,
	}
}

// itemLine formats one candidate row.
func itemLine(item suggest.Suggestion) string {
	switch s := item.(type) {
	case suggest.Mention:
		return fmt.Sprintf("@%s  mention", s.Username)
	case suggest.Emoji:
		return fmt.Sprintf("%s :%s:", s.Glyph, s.Shortcode)
	default:
		return item.Label()
	}
}

func (c SuggestionsComponent) Render() string {
	if len(c.items) == 0 {
		return ""
	}

	// Calculate visible range for scrolling
	startIdx := 0
	endIdx := len(c.items)

	if len(c.items) > c.height {
		// Scroll to keep selected item visible
		if c.selected >= c.height {
			startIdx = c.selected - c.height + 1
		}
		endIdx = startIdx + c.height
		if endIdx > len(c.items) {
			endIdx = len(c.items)
			startIdx = endIdx - c.height
		}
	}

	var lines []string
	for i := startIdx; i < endIdx; i++ {
		var line string
		if i == c.selected {
			line = "> " + itemLine(c.items[i])
		} else {
			line = "  " + itemLine(c.items[i])
		}
		lines = append(lines, truncateLine(line, c.width-2))
	}

	border := strings.Repeat("─", c.width-2)
	result := "┌" + border + "┐\n"
	for _, line := range lines {
		pad := c.width - 2 - runewidth.StringWidth(line)
		if pad < 0 {
			pad = 0
		}
		result += "│" + line + strings.Repeat(" ", pad) + "│\n"
	}
	result += "└" + border + "┘"
	return result
}

func (c SuggestionsComponent) Height() int {
	if len(c.items) == 0 {
		return 0
	}
	return c.height + 2 // +2 for borders
}
