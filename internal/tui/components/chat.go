package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Message represents a chat message
type Message struct {
	ID       string    // Unique identifier
	Username string    // Sender display name
	Body     string    // Message text
	SentAt   time.Time // When the message was sent
	Mine     bool      // Sent by the local user
}

// ChatComponent handles the rendering of chat messages
type ChatComponent struct {
	messages []Message
	height   int
	width    int
}

// NewChatComponent creates a new chat component
func NewChatComponent(messages []Message, height int, width int) *ChatComponent {
	return &ChatComponent{
		messages: messages,
		height:   height,
		width:    width,
	}
}

// Render renders the chat messages with proper styling and scrolling
func (c *ChatComponent) Render() string {
	mineStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("4"))   // Blue
	othersStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // Yellow
	timeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	var chatLines []string
	for _, msg := range c.messages {
		nameStyle := othersStyle
		if msg.Mine {
			nameStyle = mineStyle
		}

		prefix := msg.Username + ": "
		stamp := msg.SentAt.Format("15:04")

		body := wrapText(msg.Body, c.width-1, runewidth.StringWidth(prefix)+len(stamp)+1)
		lines := strings.Split(body, "\n")

		first := nameStyle.Render(prefix) + lines[0]
		pad := c.width - runewidth.StringWidth(prefix) - runewidth.StringWidth(lines[0]) - len(stamp) - 1
		if pad > 0 {
			first += strings.Repeat(" ", pad) + timeStyle.Render(stamp)
		}
		chatLines = append(chatLines, first)

		indent := strings.Repeat(" ", runewidth.StringWidth(prefix))
		for _, line := range lines[1:] {
			chatLines = append(chatLines, indent+line)
		}
	}

	// Limit chat lines to fit viewport
	chatHeight := max(c.height, 1)
	if len(chatLines) > chatHeight {
		chatLines = chatLines[len(chatLines)-chatHeight:]
	}

	// Pad chat area to push input and footer to the bottom
	chat := strings.Join(chatLines, "\n")
	chatLineCount := len(chatLines)

	paddingLines := chatHeight - chatLineCount
	if paddingLines > 0 {
		chat += strings.Repeat("\n", paddingLines)
	}

	return chat
}

// wrapText wraps text to fit within the specified width, accounting for prefix length
func wrapText(text string, width int, prefixLen int) string {
	availableWidth := width - prefixLen
	if availableWidth <= 0 {
		return text
	}

	lines := strings.Split(text, "\n")
	var wrappedLines []string

	for _, line := range lines {
		if runewidth.StringWidth(line) <= availableWidth {
			wrappedLines = append(wrappedLines, line)
			continue
		}

		var currentLine strings.Builder
		var currentLen int

		for _, word := range strings.Fields(line) {
			wordLen := runewidth.StringWidth(word)
			spaceLen := 0
			if currentLen > 0 {
				spaceLen = 1
			}

			if currentLen+spaceLen+wordLen > availableWidth && currentLen > 0 {
				wrappedLines = append(wrappedLines, currentLine.String())
				currentLine.Reset()
				currentLen = 0
				spaceLen = 0
			}

			if currentLen > 0 {
				currentLine.WriteString(" ")
				currentLen++
			}

			currentLine.WriteString(word)
			currentLen += wordLen
		}

		if currentLine.Len() > 0 {
			wrappedLines = append(wrappedLines, currentLine.String())
		}
	}

	return strings.Join(wrappedLines, "\n")
}
