package tui

import (
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"crosstalk/internal/config"
	"crosstalk/internal/history"
)

// RunTUI starts the TUI interface
func RunTUI(settings config.Settings, store *history.Store) {
	m := NewModel(settings, store)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Printf("Error: %s\n", err.Error())
		os.Exit(1)
	}
}
