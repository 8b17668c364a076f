package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"crosstalk/internal/config"
	"crosstalk/internal/engine"
	"crosstalk/internal/logger"
	"crosstalk/internal/tui/components"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.width = msg.Width
		m.viewport.height = msg.Height
		m.native.Width = msg.Width - 6 // Account for border padding + prefix
		m.ready = true
		return m, nil

	case BlinkTickMsg:
		return m, blinkTick()

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "f2":
		return m.toggleMode(), nil
	}

	if m.surface.Mode() == engine.ModeIME {
		return m.updateIME(msg)
	}

	for _, ev := range translateKeyMsg(msg) {
		logger.Key("key_down", ev)
		switch m.surface.HandleGlobalKey(ev) {
		case engine.OutcomeSubmit:
			m = m.submit()
		case engine.OutcomeCancel:
			m.surface.Reset()
		}
	}
	return m, nil
}

// updateIME routes keys through the native text field and mirrors its
// value back into the surface. Suggestion keys are intercepted so the
// popup behaves the same in both modes.
func (m Model) updateIME(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	session := m.surface.Suggestions()

	switch msg.String() {
	case "enter":
		m = m.submit()
		m.native.Reset()
		return m, nil
	case "esc":
		m.surface.Reset()
		m.native.Reset()
		return m, nil
	case "up":
		if session.Visible {
			m.surface.SuggestPrev()
			return m, nil
		}
	case "down":
		if session.Visible {
			m.surface.SuggestNext()
			return m, nil
		}
	case "tab":
		if session.Visible {
			m.surface.AcceptSuggestion()
			m.native.SetValue(m.surface.CurrentText())
			m.native.CursorEnd()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.native, cmd = m.native.Update(msg)
	pos := m.native.Position()
	m.surface.MirrorNative(m.native.Value(), pos, pos)
	return m, cmd
}

// toggleMode switches between focusless and ime input without losing
// the draft.
func (m Model) toggleMode() Model {
	if m.surface.Mode() == engine.ModeFocusless {
		m.surface.SetMode(engine.ModeIME)
		m.native.SetValue(m.surface.CurrentText())
		m.native.CursorEnd()
		m.native.Focus()
	} else {
		m.surface.SetMode(engine.ModeFocusless)
		m.surface.Focus()
	}
	logger.Info("Input mode switched to %s", m.surface.Mode())
	return m
}

// submit appends the draft to history, echoes it into the chat pane
// and clears the surface. Blank drafts are dropped.
func (m Model) submit() Model {
	body := strings.TrimSpace(m.surface.CurrentText())
	if body == "" {
		m.surface.Reset()
		return m
	}

	if m.store != nil {
		stored, err := m.store.Append(m.settings.Channel, m.settings.Username, body)
		if err != nil {
			logger.Error("Failed to store message: %v", err)
			m.status = "failed to send"
			return m
		}
		m.messages = append(m.messages, components.Message{
			ID:       stored.ID,
			Username: stored.Username,
			Body:     stored.Body,
			SentAt:   stored.SentAt,
			Mine:     true,
		})
		m.roster.reload()
	} else {
		m.messages = append(m.messages, components.Message{
			Username: m.settings.Username,
			Body:     body,
			SentAt:   time.Now(),
			Mine:     true,
		})
	}

	m.surface.Reset()
	return m
}

// persistenceLabel is shown in the footer so the operator can tell at
// a glance which key set the global hook is latching.
func (m Model) persistenceLabel() string {
	switch config.ParseKeyPersistenceMode(m.settings.KeyPersistence) {
	case config.PersistWASD:
		return "wasd"
	case config.PersistNone:
		return "none"
	default:
		return "full"
	}
}
