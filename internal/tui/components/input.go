package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// InputComponent renders the reconstructed input line: plain text
// around a reverse-video selection, with a block caret when the
// selection is collapsed.
type InputComponent struct {
	before       string
	selected     string
	after        string
	caretVisible bool
	width        int
}

// NewInputComponent creates a new input component
func NewInputComponent(before, selected, after string, caretVisible bool, width int) *InputComponent {
	return &InputComponent{
		before:       before,
		selected:     selected,
		after:        after,
		caretVisible: caretVisible,
		width:        width,
	}
}

// Render renders the input area with border and styling
func (i *InputComponent) Render() string {
	selectionStyle := lipgloss.NewStyle().Reverse(true)
	caretStyle := lipgloss.NewStyle().Reverse(true)

	var line string
	if i.selected != "" {
		line = i.before + selectionStyle.Render(i.selected) + i.after
	} else {
		// Collapsed selection: the caret sits on the rune after the
		// insertion point, or on a padding cell at the end of the line.
		caretRune := " "
		rest := ""
		if i.after != "" {
			runes := []rune(i.after)
			caretRune = string(runes[0])
			rest = string(runes[1:])
		}
		if i.caretVisible {
			line = i.before + caretStyle.Render(caretRune) + rest
		} else {
			line = i.before + caretRune + rest
		}
	}

	return borderStyle(i.width).Render(line)
}

// RenderNativeInput wraps the ime-mode text field in the same border
// as the reconstructed line so mode switches do not shift the layout.
func RenderNativeInput(field string, width int) string {
	return borderStyle(width).Render(field)
}

func borderStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(width - 2).
		Padding(0, 1)
}

// truncateLine clips a rendered line to the given cell width.
func truncateLine(line string, width int) string {
	if runewidth.StringWidth(line) <= width {
		return line
	}
	return runewidth.Truncate(line, width, "...")
}
