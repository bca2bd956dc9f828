// Package tui provides the terminal user interface for Ask Buddy.
package tui

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/askbuddy/askbuddy/internal/api"
	"github.com/askbuddy/askbuddy/internal/bridge"
	"github.com/askbuddy/askbuddy/internal/debug"
	"github.com/askbuddy/askbuddy/internal/identity"
	"github.com/askbuddy/askbuddy/internal/pubsub"
	"github.com/askbuddy/askbuddy/internal/transfer"
	"github.com/askbuddy/askbuddy/internal/tui/page"
	"github.com/askbuddy/askbuddy/internal/tui/page/chat"
	"github.com/askbuddy/askbuddy/internal/tui/page/login"
	"github.com/askbuddy/askbuddy/internal/tui/styles"
)

// Model is the main TUI model. It routes messages to the active page.
type Model struct {
	client   *api.Client
	identity *identity.Manager
	uploader *transfer.Uploader

	loginPage   *login.Model
	chatPage    *chat.Model
	currentPage page.ID

	width  int
	height int
	ready  bool
}

// New creates the root TUI model. A restored identity skips the login page.
func New(client *api.Client, mgr *identity.Manager, uploader *transfer.Uploader) *Model {
	m := &Model{
		client:      client,
		identity:    mgr,
		uploader:    uploader,
		currentPage: page.Login,
		loginPage:   login.New(client, mgr),
	}

	if current := mgr.Current(); current.IsAuthenticated() {
		m.chatPage = chat.New(client, mgr, uploader, current.Token)
		m.currentPage = page.Chat
	}

	return m
}

// Init initializes the active page.
func (m *Model) Init() tea.Cmd {
	if m.currentPage == page.Chat && m.chatPage != nil {
		return m.chatPage.Init()
	}
	return m.loginPage.Init()
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.updateComponentSizes()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case login.SuccessMsg:
		debug.Event("tui", "login", msg.Username)
		m.chatPage = chat.New(m.client, m.identity, m.uploader, msg.Token)
		m.chatPage.SetSize(m.width, m.height)
		m.currentPage = page.Chat
		return m, m.chatPage.Init()

	case chat.LogoutRequestMsg:
		debug.Event("tui", "logout", m.identity.Current().Username)
		m.identity.Logout()
		m.chatPage = nil
		m.loginPage = login.New(m.client, m.identity)
		m.loginPage.SetSize(m.width, m.height)
		m.currentPage = page.Login
		return m, m.loginPage.Init()

	case page.ChangeMsg:
		m.currentPage = msg.Page
		return m, nil
	}

	return m, m.routeToPage(msg)
}

func (m *Model) routeToPage(msg tea.Msg) tea.Cmd {
	switch m.currentPage {
	case page.Login:
		_, cmd := m.loginPage.Update(msg)
		return cmd
	case page.Chat:
		if m.chatPage == nil {
			return nil
		}
		_, cmd := m.chatPage.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) updateComponentSizes() {
	if m.loginPage != nil {
		m.loginPage.SetSize(m.width, m.height)
	}
	if m.chatPage != nil {
		m.chatPage.SetSize(m.width, m.height)
	}
}

// View renders the TUI.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion

	if !m.ready {
		view.Content = "Loading..."
		return view
	}

	switch m.currentPage {
	case page.Chat:
		if m.chatPage != nil {
			view.Content = m.chatPage.View()
			view.Cursor = m.chatPage.Cursor()
		}
	default:
		view.Content = m.loginPage.View()
		view.Cursor = m.loginPage.Cursor()
	}

	return view
}

// Run starts the TUI program.
func Run(client *api.Client, mgr *identity.Manager, uploader *transfer.Uploader, hub *pubsub.Hub) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("askbuddy requires an interactive terminal: stdin/stdout must be connected to a TTY")
	}

	// Initialize theme.
	styles.NewManager()

	model := New(client, mgr, uploader)
	p := tea.NewProgram(model)

	// Forward pub/sub events to Bubble Tea messages.
	if hub != nil {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		tuiBridge := bridge.NewTUIBridge(hub, p)
		tuiBridge.Start(ctx)
		defer tuiBridge.Stop()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
