package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"crosstalk/internal/clipboard"
	"crosstalk/internal/config"
	"crosstalk/internal/emoji"
	"crosstalk/internal/engine"
	"crosstalk/internal/history"
	"crosstalk/internal/logger"
	"crosstalk/internal/suggest"
	"crosstalk/internal/tui/components"
)

// blinkInterval is how often the view is re-rendered to advance the
// caret blink phase. The surface decides visibility; this only drives
// redraws.
const blinkInterval = 100 * time.Millisecond

// Model represents the Bubble Tea model for the TUI
type Model struct {
	settings config.Settings
	store    *history.Store
	surface  *engine.Surface
	roster   *roster

	// native backs ime mode: a regular focused text field whose value
	// and cursor are mirrored into the surface after every update.
	native textinput.Model

	messages []components.Message
	status   string
	viewport struct {
		width  int
		height int
	}
	ready bool
}

// BlinkTickMsg advances the caret blink phase.
type BlinkTickMsg struct{}

// roster caches the username universe for mention suggestions so the
// suggestion engine does not hit SQLite on every keystroke.
type roster struct {
	store   *history.Store
	channel string
	limit   int
	names   []string
}

func newRoster(store *history.Store, channel string, limit int) *roster {
	r := &roster{store: store, channel: channel, limit: limit}
	r.reload()
	return r
}

func (r *roster) reload() {
	if r.store == nil {
		return
	}
	names, err := r.store.Usernames(r.channel, r.limit)
	if err != nil {
		logger.Error("Failed to load username roster: %v", err)
		return
	}
	r.names = names
}

// Usernames implements suggest.UsernameSource.
func (r *roster) Usernames() []string {
	return r.names
}

// NewModel creates a new TUI model
func NewModel(settings config.Settings, store *history.Store) Model {
	ti := textinput.New()
	ti.Placeholder = "Type a message..."
	ti.Prompt = ""
	ti.Focus()

	ros := newRoster(store, settings.Channel, settings.HistoryLimit)
	sugg := suggest.NewEngine(ros, emoji.Default())

	surface := engine.NewSurface(clipboard.NewSystem(), sugg)
	surface.SetBlinkPeriod(time.Duration(settings.CaretBlinkMs) * time.Millisecond)
	surface.SetMode(engine.ParseInputMode(settings.InputMode))

	model := Model{
		settings: settings,
		store:    store,
		surface:  surface,
		roster:   ros,
		native:   ti,
		messages: loadHistory(store, settings),
	}

	return model
}

// loadHistory pulls recent channel messages so the chat pane is not
// empty on start.
func loadHistory(store *history.Store, settings config.Settings) []components.Message {
	if store == nil {
		return nil
	}
	recent, err := store.Recent(settings.Channel, settings.HistoryLimit)
	if err != nil {
		logger.Error("Failed to load channel history: %v", err)
		return nil
	}
	messages := make([]components.Message, 0, len(recent))
	for _, msg := range recent {
		messages = append(messages, components.Message{
			ID:       msg.ID,
			Username: msg.Username,
			Body:     msg.Body,
			SentAt:   msg.SentAt,
			Mine:     msg.Username == settings.Username,
		})
	}
	return messages
}

// Init initializes the TUI model
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, blinkTick())
}

func blinkTick() tea.Cmd {
	return tea.Tick(blinkInterval, func(time.Time) tea.Msg {
		return BlinkTickMsg{}
	})
}
