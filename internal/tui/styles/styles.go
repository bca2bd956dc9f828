// Package styles provides theming for the Ask Buddy TUI.
package styles

import (
	"image/color"

	"charm.land/bubbles/v2/textinput"
	"charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme holds the color palette and derived styles.
type Theme struct {
	Name   string
	IsDark bool

	Primary   color.Color
	Secondary color.Color
	Tertiary  color.Color
	Accent    color.Color

	BgBase    color.Color
	BgSubtle  color.Color
	BgOverlay color.Color

	FgBase   color.Color
	FgMuted  color.Color
	FgSubtle color.Color

	Border      color.Color
	BorderFocus color.Color

	Success color.Color
	Error   color.Color
	Warning color.Color
	Info    color.Color

	styles *StyleSet
}

// StyleSet holds the pre-built lipgloss styles for a theme.
type StyleSet struct {
	Base     lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Subtle   lipgloss.Style
	Primary  lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Info     lipgloss.Style

	TextInput textinput.Styles
}

// S returns the theme's style set, building it on first use.
func (t *Theme) S() *StyleSet {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *StyleSet {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	ti := textinput.DefaultStyles(t.IsDark)
	ti.Focused.Placeholder = lipgloss.NewStyle().Foreground(t.FgSubtle)
	ti.Blurred.Placeholder = lipgloss.NewStyle().Foreground(t.FgSubtle)
	ti.Focused.Prompt = lipgloss.NewStyle().Foreground(t.Primary)
	ti.Blurred.Prompt = lipgloss.NewStyle().Foreground(t.FgMuted)
	ti.Focused.Text = base
	ti.Blurred.Text = lipgloss.NewStyle().Foreground(t.FgMuted)

	return &StyleSet{
		Base:     base,
		Title:    lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(t.Secondary).Bold(true),
		Text:     base,
		Muted:    lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle:   lipgloss.NewStyle().Foreground(t.FgSubtle),
		Primary:  lipgloss.NewStyle().Foreground(t.Primary),
		Success:  lipgloss.NewStyle().Foreground(t.Success),
		Error:    lipgloss.NewStyle().Foreground(t.Error),
		Warning:  lipgloss.NewStyle().Foreground(t.Warning),
		Info:     lipgloss.NewStyle().Foreground(t.Info),

		TextInput: ti,
	}
}

// ParseHex converts a hex string like "#34d399" into a color. Invalid input
// falls back to white so a bad palette entry never panics the UI.
func ParseHex(hex string) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.White
	}
	return c
}

// Manager holds the active theme.
type Manager struct {
	current *Theme
}

var defaultManager *Manager

// NewManager initializes the theme manager with the default theme.
func NewManager() *Manager {
	defaultManager = &Manager{current: NewDefaultTheme()}
	return defaultManager
}

// CurrentTheme returns the active theme, initializing the manager if needed.
func CurrentTheme() *Theme {
	if defaultManager == nil {
		NewManager()
	}
	return defaultManager.current
}
