package tui

import (
	"time"

	"crosstalk/internal/engine"
	"crosstalk/internal/tui/components"
)

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	session := m.surface.Suggestions()

	var suggestionsComponent components.SuggestionsComponent
	var suggestionsHeight int
	if session.Visible {
		suggestionsComponent = components.NewSuggestionsComponent(
			session.Candidates,
			session.ActiveIndex,
			m.viewport.width,
		)
		suggestionsHeight = suggestionsComponent.Height()
	}

	statusHeight := 0
	if m.status != "" {
		statusHeight = 1
	}

	// Heights: total - input (1 line + 2 border) - suggestions - status - footer
	chatHeight := m.viewport.height - 3 - suggestionsHeight - statusHeight - 1

	chatComponent := components.NewChatComponent(m.messages, chatHeight, m.viewport.width)
	chat := chatComponent.Render()

	var status string
	if m.status != "" {
		status = "  " + m.status + "\n"
	}

	var suggestions string
	if session.Visible {
		suggestions = suggestionsComponent.Render() + "\n"
	}

	var input string
	if m.surface.Mode() == engine.ModeIME {
		input = components.RenderNativeInput(m.native.View(), m.viewport.width)
	} else {
		before, selected, after := m.surface.Segments()
		inputComponent := components.NewInputComponent(
			before, selected, after,
			m.surface.CaretVisible(time.Now()),
			m.viewport.width,
		)
		input = inputComponent.Render()
	}

	footerComponent := components.NewFooterComponent(
		m.surface.Mode(),
		m.settings.Channel,
		m.persistenceLabel(),
		m.viewport.width,
	)
	footer := footerComponent.Render()

	return chat + "\n" + status + suggestions + input + "\n" + footer
}
