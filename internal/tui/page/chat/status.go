package chat

import (
	"charm.land/lipgloss/v2"

	"github.com/askbuddy/askbuddy/internal/tui/styles"
	"github.com/askbuddy/askbuddy/internal/tui/util"
)

// StatusBar shows the conversation state, the file scope, and transient
// banners (upload and auth status). Chat errors never land here; they live
// in the conversation itself.
type StatusBar struct {
	sending   bool
	scopeName string
	username  string

	banner     string
	bannerKind util.InfoType

	width int
}

// NewStatusBar creates a new status bar.
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetSending marks whether a query is in flight.
func (s *StatusBar) SetSending(sending bool) {
	s.sending = sending
}

// SetScope shows which file questions are scoped to. Empty means all files.
func (s *StatusBar) SetScope(name string) {
	s.scopeName = name
}

// SetUsername shows who is logged in.
func (s *StatusBar) SetUsername(name string) {
	s.username = name
}

// SetBanner sets the transient banner. The page owns the auto-clear timer.
func (s *StatusBar) SetBanner(text string, kind util.InfoType) {
	s.banner = text
	s.bannerKind = kind
}

// ClearBanner removes the transient banner.
func (s *StatusBar) ClearBanner() {
	s.banner = ""
}

// SetWidth sets the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// View renders the status bar.
func (s *StatusBar) View() string {
	t := styles.CurrentTheme()

	var left string
	switch {
	case s.banner != "":
		var style lipgloss.Style
		switch s.bannerKind {
		case util.InfoTypeSuccess:
			style = t.S().Success
		case util.InfoTypeError:
			style = t.S().Error
		case util.InfoTypeWarn:
			style = t.S().Warning
		default:
			style = t.S().Info
		}
		left = style.Render(s.banner)
	case s.sending:
		left = t.S().Info.Render("Thinking...")
	default:
		left = t.S().Success.Render("Ready")
	}

	scope := "All Files"
	if s.scopeName != "" {
		scope = s.scopeName
	}
	mid := t.S().Muted.Render("Scope: " + scope)

	right := t.S().Muted.Render(s.username + " • / for commands")

	barStyle := lipgloss.NewStyle().
		Width(s.width).
		Padding(0, 1).
		Background(t.BgSubtle)

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(mid) - lipgloss.Width(right) - 6
	if gap < 2 {
		gap = 2
	}
	spacer := lipgloss.NewStyle().Width(gap / 2).Render("")

	return barStyle.Render(left + spacer + mid + spacer + right)
}
