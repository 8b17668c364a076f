package components

import (
	"github.com/charmbracelet/lipgloss"

	"crosstalk/internal/engine"
)

// ModeIndicatorComponent handles the rendering of the input mode indicator
type ModeIndicatorComponent struct {
	mode engine.InputMode
}

// NewModeIndicatorComponent creates a new mode indicator component
func NewModeIndicatorComponent(mode engine.InputMode) *ModeIndicatorComponent {
	return &ModeIndicatorComponent{
		mode: mode,
	}
}

func (m *ModeIndicatorComponent) text() string {
	switch m.mode {
	case engine.ModeIME:
		return " IME "
	default:
		return " FOCUSLESS "
	}
}

// Render renders the input mode indicator with colored background
func (m *ModeIndicatorComponent) Render() string {
	modeColor := "2" // Green background for focusless capture
	if m.mode == engine.ModeIME {
		modeColor = "4" // Blue background for native input
	}

	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")). // Black text
		Background(lipgloss.Color(modeColor)).
		Render(m.text())
}

// Width returns the width of the mode indicator
func (m *ModeIndicatorComponent) Width() int {
	return len(m.text())
}
