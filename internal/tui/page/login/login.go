// Package login provides the sign-in and registration page.
package login

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/textinput"
	"charm.land/lipgloss/v2"

	"github.com/askbuddy/askbuddy/internal/api"
	"github.com/askbuddy/askbuddy/internal/debug"
	"github.com/askbuddy/askbuddy/internal/identity"
	"github.com/askbuddy/askbuddy/internal/tui/styles"
	"github.com/askbuddy/askbuddy/internal/tui/util"
)

// Banner auto-clear delays. Failures stay visible longer.
const (
	successBannerTTL = 3 * time.Second
	failureBannerTTL = 5 * time.Second
)

// Mode selects between signing in and creating an account.
type Mode int

// Form modes.
const (
	ModeLogin Mode = iota
	ModeRegister
)

// SuccessMsg is emitted when login completes and the identity is stored.
type SuccessMsg struct {
	Token    string
	Username string
}

type (
	loginResultMsg struct {
		token    string
		username string
		err      error
	}

	registerResultMsg struct {
		username string
		err      error
	}

	bannerClearMsg struct {
		seq int
	}
)

type field int

const (
	fieldUsername field = iota
	fieldPassword
)

// Model is the login page model.
type Model struct {
	client   *api.Client
	identity *identity.Manager

	username textinput.Model
	password textinput.Model
	focused  field
	mode     Mode
	busy     bool

	banner     string
	bannerKind util.InfoType
	bannerSeq  int

	width  int
	height int
}

// New creates the login page.
func New(client *api.Client, mgr *identity.Manager) *Model {
	t := styles.CurrentTheme()

	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 100
	username.Prompt = ""
	username.SetStyles(t.S().TextInput)
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 200
	password.Prompt = ""
	password.EchoMode = textinput.EchoPassword
	password.SetStyles(t.S().TextInput)

	return &Model{
		client:   client,
		identity: mgr,
		username: username,
		password: password,
		focused:  fieldUsername,
	}
}

// Init initializes the login page.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize sets the page dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.username.SetWidth(min(width-8, 40))
	m.password.SetWidth(min(width-8, 40))
}

// Cursor returns the cursor of the focused input.
func (m *Model) Cursor() *tea.Cursor {
	if m.focused == fieldUsername {
		return m.username.Cursor()
	}
	return m.password.Cursor()
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (util.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case loginResultMsg:
		m.busy = false
		if msg.err != nil {
			debug.Error("login", msg.err, "signing in")
			return m, m.showBanner(loginErrorText(msg.err), util.InfoTypeError)
		}
		if err := m.identity.Login(msg.token, msg.username); err != nil {
			return m, m.showBanner(err.Error(), util.InfoTypeError)
		}
		return m, util.CmdHandler(SuccessMsg{Token: msg.token, Username: msg.username})

	case registerResultMsg:
		m.busy = false
		if msg.err != nil {
			debug.Error("login", msg.err, "registering")
			return m, m.showBanner(loginErrorText(msg.err), util.InfoTypeError)
		}
		m.mode = ModeLogin
		m.password.Reset()
		return m, m.showBanner("Account created. Please sign in.", util.InfoTypeSuccess)

	case bannerClearMsg:
		// A newer banner supersedes the pending clear.
		if msg.seq == m.bannerSeq {
			m.banner = ""
		}
		return m, nil
	}

	return m, m.updateInputs(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (util.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.setFocus(fieldPassword)
		return m, nil
	case "shift+tab", "up":
		m.setFocus(fieldUsername)
		return m, nil
	case "ctrl+t":
		if m.mode == ModeLogin {
			m.mode = ModeRegister
		} else {
			m.mode = ModeLogin
		}
		return m, nil
	case "enter":
		return m, m.submit()
	}

	return m, m.updateInputs(msg)
}

func (m *Model) setFocus(f field) {
	m.focused = f
	if f == fieldUsername {
		m.username.Focus()
		m.password.Blur()
	} else {
		m.password.Focus()
		m.username.Blur()
	}
}

func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.username, cmd = m.username.Update(msg)
	cmds = append(cmds, cmd)
	m.password, cmd = m.password.Update(msg)
	cmds = append(cmds, cmd)
	return tea.Batch(cmds...)
}

// submit validates locally before any network call.
func (m *Model) submit() tea.Cmd {
	if m.busy {
		return nil
	}

	username := m.username.Value()
	password := m.password.Value()
	if username == "" || password == "" {
		return m.showBanner("Username and password are required.", util.InfoTypeError)
	}

	m.busy = true
	if m.mode == ModeRegister {
		return m.registerCmd(username, password)
	}
	return m.loginCmd(username, password)
}

func (m *Model) loginCmd(username, password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		token, err := client.Login(context.Background(), username, password)
		return loginResultMsg{token: token, username: username, err: err}
	}
}

func (m *Model) registerCmd(username, password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.Register(context.Background(), username, password)
		return registerResultMsg{username: username, err: err}
	}
}

// showBanner sets the banner and schedules its auto-clear.
func (m *Model) showBanner(text string, kind util.InfoType) tea.Cmd {
	m.banner = text
	m.bannerKind = kind
	m.bannerSeq++

	ttl := successBannerTTL
	if kind == util.InfoTypeError {
		ttl = failureBannerTTL
	}

	seq := m.bannerSeq
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return bannerClearMsg{seq: seq}
	})
}

// loginErrorText surfaces the server's detail verbatim when present.
func loginErrorText(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return "Could not reach the server. Please try again."
}

// View renders the login page.
func (m *Model) View() string {
	t := styles.CurrentTheme()

	title := t.S().Title.Render("Ask Buddy")
	var subtitle string
	if m.mode == ModeLogin {
		subtitle = t.S().Muted.Render("Sign in to continue")
	} else {
		subtitle = t.S().Muted.Render("Create an account")
	}

	fieldStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)
	focusedStyle := fieldStyle.BorderForeground(t.BorderFocus)

	usernameBox := fieldStyle
	passwordBox := fieldStyle
	if m.focused == fieldUsername {
		usernameBox = focusedStyle
	} else {
		passwordBox = focusedStyle
	}

	parts := []string{
		title,
		subtitle,
		"",
		usernameBox.Render(m.username.View()),
		passwordBox.Render(m.password.View()),
	}

	if m.banner != "" {
		var bannerStyle lipgloss.Style
		switch m.bannerKind {
		case util.InfoTypeSuccess:
			bannerStyle = t.S().Success
		case util.InfoTypeError:
			bannerStyle = t.S().Error
		case util.InfoTypeWarn:
			bannerStyle = t.S().Warning
		default:
			bannerStyle = t.S().Info
		}
		parts = append(parts, "", bannerStyle.Render(m.banner))
	}

	action := "enter to sign in"
	toggle := "ctrl+t to register"
	if m.mode == ModeRegister {
		action = "enter to register"
		toggle = "ctrl+t to sign in"
	}
	if m.busy {
		action = "working..."
	}
	parts = append(parts, "", t.S().Subtle.Render(action+" • "+toggle))

	form := lipgloss.JoinVertical(lipgloss.Center, parts...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, form)
}
