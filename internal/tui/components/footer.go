package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"crosstalk/internal/engine"
)

// FooterComponent handles the rendering of the status bar footer
type FooterComponent struct {
	mode        engine.InputMode
	channel     string
	persistence string
	width       int
}

// NewFooterComponent creates a new footer component
func NewFooterComponent(mode engine.InputMode, channel, persistence string, width int) *FooterComponent {
	return &FooterComponent{
		mode:        mode,
		channel:     channel,
		persistence: persistence,
		width:       width,
	}
}

// Render renders the complete footer with mode indicator and status bar
func (f *FooterComponent) Render() string {
	modeIndicator := NewModeIndicatorComponent(f.mode)
	modeIndicatorRendered := modeIndicator.Render()
	modeIndicatorWidth := modeIndicator.Width()

	remainingWidth := f.width - modeIndicatorWidth

	leftText := "crosstalk"
	channelText := "#" + f.channel
	rightText := "keys: " + f.persistence

	sections := []string{leftText, channelText, rightText}

	totalContentWidth := 0
	for _, section := range sections {
		totalContentWidth += len(section)
	}

	// Account for separators (3 spaces between each section) and padding
	separatorCount := len(sections) - 1
	totalSeparatorWidth := separatorCount * 3
	availableWidth := remainingWidth - totalContentWidth - totalSeparatorWidth - 2

	extraSpacePerGap := availableWidth / separatorCount
	if extraSpacePerGap < 0 {
		extraSpacePerGap = 0
	}

	separator := strings.Repeat(" ", 3+extraSpacePerGap)

	dimOnBar := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Background(lipgloss.Color("236"))
	channelOnBar := lipgloss.NewStyle().
		Foreground(lipgloss.Color("6")).
		Background(lipgloss.Color("236"))
	barOnly := lipgloss.NewStyle().
		Background(lipgloss.Color("236"))

	composedFooter := dimOnBar.Render(leftText) +
		barOnly.Render(separator) +
		channelOnBar.Render(channelText) +
		barOnly.Render(separator) +
		dimOnBar.Render(rightText)

	// Fill the rest of the bar
	paddingNeeded := remainingWidth - lipgloss.Width(composedFooter) - 2
	if paddingNeeded > 0 {
		composedFooter += barOnly.Render(strings.Repeat(" ", paddingNeeded))
	}

	mainFooter := lipgloss.NewStyle().
		Background(lipgloss.Color("236")).
		Width(remainingWidth).
		Padding(0, 1).
		Render(composedFooter)

	return modeIndicatorRendered + mainFooter
}
