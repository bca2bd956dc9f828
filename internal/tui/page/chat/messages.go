package chat

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"

	"github.com/askbuddy/askbuddy/internal/api"
	"github.com/askbuddy/askbuddy/internal/debug"
	"github.com/askbuddy/askbuddy/internal/tui/styles"
)

// AnswerCopiedMsg is sent after the last answer was copied to the clipboard.
type AnswerCopiedMsg struct {
	Err error
}

// MessageList displays the conversation, newest at the bottom.
type MessageList struct {
	messages []api.Message
	markdown *MarkdownRenderer
	width    int
	height   int
	offset   int // Lines scrolled up from the bottom
}

// NewMessageList creates a new message list component.
func NewMessageList() *MessageList {
	return &MessageList{
		markdown: NewMarkdownRenderer(),
	}
}

// SetMessages sets the messages to display and snaps to the bottom.
func (m *MessageList) SetMessages(messages []api.Message) {
	m.messages = messages
	m.offset = 0
}

// SetSize sets the component size.
func (m *MessageList) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// ScrollUp scrolls toward older messages.
func (m *MessageList) ScrollUp(lines int) {
	m.offset += lines
}

// ScrollDown scrolls toward the newest message.
func (m *MessageList) ScrollDown(lines int) {
	m.offset -= lines
	if m.offset < 0 {
		m.offset = 0
	}
}

// Update routes scroll events.
func (m *MessageList) Update(msg tea.Msg) (*MessageList, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseWheelMsg:
		if msg.Button == tea.MouseWheelUp {
			m.ScrollUp(3)
		} else if msg.Button == tea.MouseWheelDown {
			m.ScrollDown(3)
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "pgup":
			m.ScrollUp(m.height)
		case "pgdown":
			m.ScrollDown(m.height)
		}
	}
	return m, nil
}

// CopyLastAnswer copies the newest agent message to the system clipboard.
func (m *MessageList) CopyLastAnswer() tea.Cmd {
	var answer string
	for i := len(m.messages) - 1; i >= 0; i-- {
		if m.messages[i].Sender == api.SenderAgent {
			answer = m.messages[i].Text
			break
		}
	}
	if answer == "" {
		return nil
	}

	return func() tea.Msg {
		err := clipboard.WriteAll(answer)
		if err != nil {
			debug.Error("chat", err, "copying answer to clipboard")
		}
		return AnswerCopiedMsg{Err: err}
	}
}

// View renders the message list.
func (m *MessageList) View() string {
	t := styles.CurrentTheme()

	if len(m.messages) == 0 {
		empty := t.S().Muted.Render("No messages yet. Ask a question about your documents.")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, empty)
	}

	rendered := make([]string, 0, len(m.messages))
	for _, msg := range m.messages {
		rendered = append(rendered, m.renderMessage(msg))
	}
	content := strings.Join(rendered, "\n\n")

	// Window onto the last lines, shifted up by the scroll offset.
	lines := strings.Split(content, "\n")
	if len(lines) > m.height {
		maxOffset := len(lines) - m.height
		if m.offset > maxOffset {
			m.offset = maxOffset
		}
		end := len(lines) - m.offset
		lines = lines[end-m.height : end]
	} else {
		m.offset = 0
	}

	containerStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Padding(0, 1)

	return containerStyle.Render(strings.Join(lines, "\n"))
}

func (m *MessageList) renderMessage(msg api.Message) string {
	t := styles.CurrentTheme()

	contentWidth := m.width - 4

	switch msg.Sender {
	case api.SenderUser:
		header := t.S().Text.Bold(true).Render("You")
		content := t.S().Text.Width(contentWidth).Render(msg.Text)
		return lipgloss.JoinVertical(lipgloss.Left, header, content)

	case api.SenderAgent:
		header := t.S().Primary.Bold(true).Render("Buddy")
		content, err := m.markdown.Render(msg.Text, contentWidth)
		if err != nil {
			content = t.S().Text.Width(contentWidth).Render(msg.Text)
		}
		return lipgloss.JoinVertical(lipgloss.Left, header, strings.TrimRight(content, "\n"))

	default:
		return t.S().Muted.Render(msg.Text)
	}
}
