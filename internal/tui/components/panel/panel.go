// Package panel provides a bordered box with a centered title, used by the
// sidebar lists.
package panel

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/rivo/uniseg"

	"github.com/askbuddy/askbuddy/internal/tui/styles"
)

// BorderedPanel renders content inside a bordered box with a centered title.
type BorderedPanel struct {
	title   string
	content string
	width   int
	height  int
	focused bool
}

// New creates a new bordered panel.
func New(title string) *BorderedPanel {
	return &BorderedPanel{title: title}
}

// SetTitle sets the title to display in the top border.
func (p *BorderedPanel) SetTitle(title string) {
	p.title = title
}

// SetContent sets the content to render inside the panel.
func (p *BorderedPanel) SetContent(content string) {
	p.content = content
}

// SetSize sets the panel dimensions.
func (p *BorderedPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetFocused sets whether the panel has focus (affects border color).
func (p *BorderedPanel) SetFocused(focused bool) {
	p.focused = focused
}

// View renders the bordered panel.
func (p *BorderedPanel) View() string {
	t := styles.CurrentTheme()

	borderColor := t.Border
	if p.focused {
		borderColor = t.BorderFocus
	}
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := t.S().Primary.Bold(true)

	// Inner width between the two border runes.
	borderWidth := p.width - 2
	if borderWidth < 4 {
		borderWidth = 4
	}
	contentWidth := borderWidth - 2

	title := TruncateToWidth(p.title, borderWidth-4)
	titleRendered := titleStyle.Render(title)
	titleVisualLen := lipgloss.Width(titleRendered)

	remainingSpace := borderWidth - titleVisualLen
	leftPadding := max(remainingSpace/2, 0)
	rightPadding := max(remainingSpace-leftPadding, 0)

	topBorder := borderStyle.Render("╭"+strings.Repeat("─", leftPadding)) +
		titleRendered +
		borderStyle.Render(strings.Repeat("─", rightPadding)+"╮")
	bottomBorder := borderStyle.Render("╰" + strings.Repeat("─", borderWidth) + "╯")

	contentLines := strings.Split(p.content, "\n")
	contentHeight := p.height - 2
	if contentHeight < 1 {
		contentHeight = 1
	}

	lines := make([]string, 0, contentHeight+2)
	lines = append(lines, topBorder)
	for i := 0; i < contentHeight; i++ {
		line := ""
		if i < len(contentLines) {
			line = contentLines[i]
		}

		lineLen := lipgloss.Width(line)
		if lineLen < contentWidth {
			line += strings.Repeat(" ", contentWidth-lineLen)
		} else if lineLen > contentWidth {
			line = TruncateToWidth(line, contentWidth)
		}

		lines = append(lines, borderStyle.Render("│ ")+line+borderStyle.Render(" │"))
	}
	lines = append(lines, bottomBorder)

	return strings.Join(lines, "\n")
}

// TruncateToWidth truncates a string to a visual width, breaking on grapheme
// cluster boundaries so wide characters and combined emoji survive intact.
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if uniseg.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}

	target := maxWidth - 3
	var b strings.Builder
	width := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if width+w > target {
			break
		}
		b.WriteString(g.Str())
		width += w
	}
	return b.String() + "..."
}
