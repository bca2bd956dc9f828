// Package sessions provides the past-conversations sidebar panel.
package sessions

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/askbuddy/askbuddy/internal/api"
	"github.com/askbuddy/askbuddy/internal/tui/components/panel"
	"github.com/askbuddy/askbuddy/internal/tui/styles"
	"github.com/askbuddy/askbuddy/internal/tui/util"
)

// LoadRequestMsg asks the page to load a past session's history.
type LoadRequestMsg struct {
	SessionToken string
}

// DeleteRequestMsg asks the page to delete a session on the server.
type DeleteRequestMsg struct {
	SessionToken string
}

// Panel lists past sessions by their first question.
type Panel struct {
	box         *panel.BorderedPanel
	sessions    []api.ChatSession
	cursor      int
	activeToken string
	width       int
	height      int
	focused     bool
}

// NewPanel creates the sessions panel.
func NewPanel() *Panel {
	return &Panel{
		box: panel.New("Sessions"),
	}
}

// SetSessions replaces the session list and clamps the cursor.
func (p *Panel) SetSessions(sessions []api.ChatSession) {
	p.sessions = sessions
	if p.cursor >= len(sessions) {
		p.cursor = max(0, len(sessions)-1)
	}
}

// SetActive marks the session the conversation currently points at.
func (p *Panel) SetActive(token string) {
	p.activeToken = token
}

// SetSize sets the panel dimensions.
func (p *Panel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetFocused sets keyboard focus.
func (p *Panel) SetFocused(focused bool) {
	p.focused = focused
}

// Update handles key events while the panel has focus.
func (p *Panel) Update(msg tea.Msg) (*Panel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !p.focused || len(p.sessions) == 0 {
		return p, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.sessions)-1 {
			p.cursor++
		}
	case "enter":
		return p, util.CmdHandler(LoadRequestMsg{SessionToken: p.sessions[p.cursor].SessionToken})
	case "d", "delete":
		return p, util.CmdHandler(DeleteRequestMsg{SessionToken: p.sessions[p.cursor].SessionToken})
	}

	return p, nil
}

// View renders the panel.
func (p *Panel) View() string {
	t := styles.CurrentTheme()

	contentWidth := p.width - 4
	content := ""
	if len(p.sessions) == 0 {
		content = t.S().Muted.Render("No past sessions")
	}

	for i, s := range p.sessions {
		label := s.FirstQuestion
		if label == "" {
			label = "(empty session)"
		}

		prefix := "  "
		if s.SessionToken == p.activeToken {
			prefix = "* "
		}
		line := panel.TruncateToWidth(prefix+label, contentWidth)

		style := t.S().Text
		if i == p.cursor && p.focused {
			style = t.S().Primary.Bold(true)
		} else if s.SessionToken == p.activeToken {
			style = t.S().Primary
		}

		if i > 0 {
			content += "\n"
		}
		content += style.Render(line)
	}

	p.box.SetTitle(fmt.Sprintf("Sessions (%d)", len(p.sessions)))
	p.box.SetContent(content)
	p.box.SetSize(p.width, p.height)
	p.box.SetFocused(p.focused)
	return p.box.View()
}
