// Package chat provides the conversation page for the Ask Buddy CLI.
package chat

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/askbuddy/askbuddy/internal/api"
	"github.com/askbuddy/askbuddy/internal/bridge"
	conv "github.com/askbuddy/askbuddy/internal/chat"
	"github.com/askbuddy/askbuddy/internal/debug"
	"github.com/askbuddy/askbuddy/internal/events"
	"github.com/askbuddy/askbuddy/internal/identity"
	"github.com/askbuddy/askbuddy/internal/transfer"
	"github.com/askbuddy/askbuddy/internal/tui/components/files"
	"github.com/askbuddy/askbuddy/internal/tui/components/sessions"
	"github.com/askbuddy/askbuddy/internal/tui/util"
)

// Banner auto-clear delays, matching the login page.
const (
	successBannerTTL = 3 * time.Second
	failureBannerTTL = 5 * time.Second
)

const sidebarWidth = 32

// Result message types for server calls.
type (
	filesLoadedMsg struct {
		files []api.FileItem
		err   error
	}

	historyLoadedMsg struct {
		msgs []api.Message
		err  error
	}

	sessionsLoadedMsg struct {
		sessions []api.ChatSession
		err      error
	}

	queryResultMsg struct {
		answer string
		err    error
	}

	sessionCreatedMsg struct {
		token string
		err   error
	}

	sessionLoadedMsg struct {
		token string
		msgs  []api.Message
		err   error
	}

	fileDeletedMsg struct {
		id  string
		err error
	}

	sessionDeletedMsg struct {
		token string
		err   error
	}

	messageDeletedMsg struct {
		id  string
		err error
	}

	bannerClearMsg struct {
		seq int
	}
)

type focusArea int

const (
	focusInput focusArea = iota
	focusFiles
	focusSessions
)

// Model is the chat page model.
type Model struct {
	client   *api.Client
	identity *identity.Manager
	uploader *transfer.Uploader

	conversation *conv.Conversation
	lists        *conv.Lists

	messages      *MessageList
	input         *Input
	status        *StatusBar
	filesPanel    *files.Panel
	sessionsPanel *sessions.Panel

	commandRegistry *CommandRegistry
	focus           focusArea
	bannerSeq       int
	width           int
	height          int
}

// New creates the chat page bound to the active session token.
func New(client *api.Client, mgr *identity.Manager, uploader *transfer.Uploader, token string) *Model {
	m := &Model{
		client:        client,
		identity:      mgr,
		uploader:      uploader,
		conversation:  conv.NewConversation(token),
		lists:         conv.NewLists(),
		messages:      NewMessageList(),
		input:         NewInput(),
		status:        NewStatusBar(),
		filesPanel:    files.NewPanel(),
		sessionsPanel: sessions.NewPanel(),

		commandRegistry: NewCommandRegistry(),
	}
	m.status.SetUsername(mgr.Current().Username)
	return m
}

// Init fetches the three lists. The fetches are independent; each one
// degrades to an empty list on its own.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.input.Init(),
		m.fetchFilesCmd(),
		m.fetchHistoryCmd(),
		m.fetchSessionsCmd(),
	)
}

// SetSize sets the page dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Cursor returns the input cursor when the input has focus.
func (m *Model) Cursor() *tea.Cursor {
	if m.focus == focusInput && m.input.IsEnabled() {
		return m.input.Cursor()
	}
	return nil
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (util.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseWheelMsg:
		var cmd tea.Cmd
		m.messages, cmd = m.messages.Update(msg)
		return m, cmd

	case filesLoadedMsg:
		if msg.err != nil {
			debug.Error("chat", msg.err, "fetching files")
			m.lists.SetFiles(nil)
		} else {
			m.lists.SetFiles(msg.files)
		}
		m.syncPanels()
		return m, nil

	case historyLoadedMsg:
		if msg.err != nil {
			debug.Error("chat", msg.err, "fetching history")
			m.conversation.Replace(nil)
		} else {
			m.conversation.Replace(msg.msgs)
		}
		m.messages.SetMessages(m.conversation.Messages())
		return m, nil

	case sessionsLoadedMsg:
		if msg.err != nil {
			debug.Error("chat", msg.err, "fetching sessions")
			m.lists.SetSessions(nil)
		} else {
			m.lists.SetSessions(msg.sessions)
		}
		m.syncPanels()
		return m, nil

	case queryResultMsg:
		if msg.err != nil {
			debug.Error("chat", msg.err, "sending query")
			m.conversation.ResolveError()
		} else {
			m.conversation.ResolveAnswer(msg.answer)
		}
		m.messages.SetMessages(m.conversation.Messages())
		m.status.SetSending(false)
		m.input.Enable()
		// The server recorded a new turn, so past-session previews may change.
		return m, tea.Batch(m.input.Focus(), m.fetchSessionsCmd())

	case sessionCreatedMsg:
		if msg.err != nil {
			return m, m.showBanner("Could not start a new session.", util.InfoTypeError)
		}
		m.conversation.StartNew(msg.token)
		m.messages.SetMessages(nil)
		m.syncPanels()
		return m, m.fetchSessionsCmd()

	case sessionLoadedMsg:
		if msg.err != nil {
			return m, m.showBanner("Could not load that session.", util.InfoTypeError)
		}
		m.conversation.Load(msg.token, msg.msgs)
		m.messages.SetMessages(m.conversation.Messages())
		m.syncPanels()
		return m, nil

	case fileDeletedMsg:
		if msg.err != nil {
			return m, m.showBanner("Could not delete the file.", util.InfoTypeError)
		}
		m.lists.PruneFile(msg.id, m.conversation)
		m.syncPanels()
		return m, m.showBanner("File deleted.", util.InfoTypeSuccess)

	case sessionDeletedMsg:
		if msg.err != nil {
			return m, m.showBanner("Could not delete the session.", util.InfoTypeError)
		}
		wasActive := m.lists.PruneSession(msg.token, m.conversation)
		m.syncPanels()
		if wasActive {
			// The delete is complete only once a fresh session replaces it.
			return m, tea.Batch(m.newSessionCmd(), m.showBanner("Session deleted.", util.InfoTypeSuccess))
		}
		return m, m.showBanner("Session deleted.", util.InfoTypeSuccess)

	case messageDeletedMsg:
		if msg.err != nil {
			return m, m.showBanner("Could not delete the message.", util.InfoTypeError)
		}
		m.conversation.PruneMessage(msg.id)
		m.messages.SetMessages(m.conversation.Messages())
		return m, nil

	case AnswerCopiedMsg:
		if msg.Err != nil {
			return m, m.showBanner("Could not copy to clipboard.", util.InfoTypeError)
		}
		return m, m.showBanner("Answer copied.", util.InfoTypeSuccess)

	case bannerClearMsg:
		if msg.seq == m.bannerSeq {
			m.status.ClearBanner()
		}
		return m, nil

	// Slash command requests.
	case NewSessionRequestMsg:
		return m, m.newSessionCmd()

	case RefreshRequestMsg:
		return m, tea.Batch(m.fetchFilesCmd(), m.fetchHistoryCmd(), m.fetchSessionsCmd())

	case UploadRequestMsg:
		return m.handleUpload(msg.Path)

	case DeleteLastMessageMsg:
		msgs := m.conversation.Messages()
		if len(msgs) == 0 {
			return m, m.showBanner("No messages to delete.", util.InfoTypeWarn)
		}
		return m, m.deleteMessageCmd(msgs[len(msgs)-1].ID)

	case UnknownCommandMsg:
		return m, m.showBanner("Unknown command: /"+msg.Command, util.InfoTypeWarn)

	// Sidebar requests.
	case files.SelectedMsg:
		if msg.FileID == "" {
			m.conversation.ClearFileScope()
		} else {
			m.conversation.SelectFile(msg.FileID, msg.FileName)
		}
		m.syncPanels()
		return m, nil

	case files.DeleteRequestMsg:
		return m, m.deleteFileCmd(msg.FileID)

	case sessions.LoadRequestMsg:
		return m, m.loadSessionCmd(msg.SessionToken)

	case sessions.DeleteRequestMsg:
		return m, m.deleteSessionCmd(msg.SessionToken)

	// Bridge messages from the pub/sub system.
	case bridge.UploadEventMsg:
		return m.handleUploadEvent(msg.Event.Payload)

	case bridge.AuthEventMsg:
		if msg.Event.Payload.Type == events.AuthEventLoggedIn {
			m.status.SetUsername(msg.Event.Payload.Username)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (util.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.cycleFocus()
		return m, nil

	case "esc":
		m.setFocus(focusInput)
		return m, nil

	case "ctrl+y":
		if cmd := m.messages.CopyLastAnswer(); cmd != nil {
			return m, cmd
		}
		return m, m.showBanner("No answer to copy yet.", util.InfoTypeWarn)

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.messages, cmd = m.messages.Update(msg)
		return m, cmd

	case "enter":
		if m.focus == focusInput {
			return m.handleSubmit()
		}
	}

	switch m.focus {
	case focusFiles:
		var cmd tea.Cmd
		m.filesPanel, cmd = m.filesPanel.Update(msg)
		return m, cmd
	case focusSessions:
		var cmd tea.Cmd
		m.sessionsPanel, cmd = m.sessionsPanel.Update(msg)
		return m, cmd
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) handleSubmit() (util.Model, tea.Cmd) {
	value := m.input.Value()

	if cmd := m.parseCommand(value); cmd != nil {
		m.input.Clear()
		return m, cmd
	}

	// One query in flight: a submit while sending changes nothing.
	userMsg, ok := m.conversation.Submit(value)
	if !ok {
		return m, nil
	}

	m.input.Clear()
	m.input.Disable()
	m.status.SetSending(true)
	m.messages.SetMessages(m.conversation.Messages())

	debug.Event("chat", "query", userMsg.ID)
	return m, m.sendQueryCmd(userMsg.Text, m.conversation.Scope().ID)
}

func (m *Model) handleUpload(path string) (util.Model, tea.Cmd) {
	if path == "" {
		return m, m.showBanner("Usage: /upload <path>", util.InfoTypeWarn)
	}

	err := m.uploader.Enqueue(context.Background(), m.identity.Current().Token, path)
	if err != nil {
		return m, m.showBanner(err.Error(), util.InfoTypeError)
	}
	return m, nil
}

func (m *Model) handleUploadEvent(ev events.UploadEvent) (util.Model, tea.Cmd) {
	switch ev.Type {
	case events.UploadEventStarted:
		return m, m.showBanner("Uploading "+ev.FileName+"...", util.InfoTypeInfo)
	case events.UploadEventCompleted:
		text := ev.Message
		if text == "" {
			text = ev.FileName + " uploaded."
		}
		return m, tea.Batch(m.showBanner(text, util.InfoTypeSuccess), m.fetchFilesCmd())
	case events.UploadEventFailed:
		text := ev.Message
		if text == "" {
			text = "Upload of " + ev.FileName + " failed."
		}
		return m, m.showBanner(text, util.InfoTypeError)
	}
	return m, nil
}

func (m *Model) cycleFocus() {
	switch m.focus {
	case focusInput:
		m.setFocus(focusFiles)
	case focusFiles:
		m.setFocus(focusSessions)
	default:
		m.setFocus(focusInput)
	}
}

func (m *Model) setFocus(f focusArea) {
	m.focus = f
	m.filesPanel.SetFocused(f == focusFiles)
	m.sessionsPanel.SetFocused(f == focusSessions)
	if f == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

// syncPanels pushes the current list and scope state into the sidebar and
// the status bar.
func (m *Model) syncPanels() {
	m.filesPanel.SetFiles(m.lists.Files())
	m.filesPanel.SetSelected(m.conversation.Scope().ID)
	m.sessionsPanel.SetSessions(m.lists.Sessions())
	m.sessionsPanel.SetActive(m.conversation.Token())
	m.status.SetScope(m.conversation.Scope().Name)
}

// showBanner sets the status banner and schedules its auto-clear.
func (m *Model) showBanner(text string, kind util.InfoType) tea.Cmd {
	m.status.SetBanner(text, kind)
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

// Server call commands. Each returns a message; nothing here mutates state.

func (m *Model) fetchFilesCmd() tea.Cmd {
	client, token := m.client, m.identity.Current().Token
	return func() tea.Msg {
		fs, err := client.ListFiles(context.Background(), token)
		return filesLoadedMsg{files: fs, err: err}
	}
}

func (m *Model) fetchHistoryCmd() tea.Cmd {
	client, token := m.client, m.conversation.Token()
	return func() tea.Msg {
		msgs, err := client.ChatHistory(context.Background(), token)
		return historyLoadedMsg{msgs: msgs, err: err}
	}
}

func (m *Model) fetchSessionsCmd() tea.Cmd {
	client, token := m.client, m.identity.Current().Token
	return func() tea.Msg {
		ss, err := client.ListSessions(context.Background(), token)
		return sessionsLoadedMsg{sessions: ss, err: err}
	}
}

func (m *Model) sendQueryCmd(question, fileID string) tea.Cmd {
	client, token := m.client, m.conversation.Token()
	return func() tea.Msg {
		answer, err := client.SendQuery(context.Background(), token, question, fileID)
		return queryResultMsg{answer: answer, err: err}
	}
}

func (m *Model) newSessionCmd() tea.Cmd {
	client, token := m.client, m.identity.Current().Token
	return func() tea.Msg {
		newToken, err := client.NewSession(context.Background(), token)
		return sessionCreatedMsg{token: newToken, err: err}
	}
}

func (m *Model) loadSessionCmd(target string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		msgs, err := client.ChatHistoryBySession(context.Background(), target)
		return sessionLoadedMsg{token: target, msgs: msgs, err: err}
	}
}

func (m *Model) deleteFileCmd(id string) tea.Cmd {
	client, token := m.client, m.identity.Current().Token
	return func() tea.Msg {
		err := client.DeleteFile(context.Background(), token, id)
		return fileDeletedMsg{id: id, err: err}
	}
}

func (m *Model) deleteSessionCmd(target string) tea.Cmd {
	client, token := m.client, m.identity.Current().Token
	return func() tea.Msg {
		err := client.DeleteSession(context.Background(), token, target)
		return sessionDeletedMsg{token: target, err: err}
	}
}

func (m *Model) deleteMessageCmd(id string) tea.Cmd {
	client, token := m.client, m.identity.Current().Token
	return func() tea.Msg {
		err := client.DeleteMessage(context.Background(), token, id)
		return messageDeletedMsg{id: id, err: err}
	}
}

// View renders the chat page.
func (m *Model) View() string {
	showSidebar := m.width >= 80
	mainWidth := m.width
	if showSidebar {
		mainWidth = m.width - sidebarWidth
	}

	inputHeight := 3
	statusHeight := 1
	messagesHeight := m.height - inputHeight - statusHeight
	if messagesHeight < 1 {
		messagesHeight = 1
	}

	m.messages.SetSize(mainWidth, messagesHeight)
	m.input.SetWidth(mainWidth)
	m.status.SetWidth(m.width)

	main := lipgloss.JoinVertical(lipgloss.Left,
		m.messages.View(),
		m.input.View(),
	)

	var body string
	if showSidebar {
		panelHeight := (m.height - statusHeight) / 2
		m.filesPanel.SetSize(sidebarWidth, panelHeight)
		m.sessionsPanel.SetSize(sidebarWidth, m.height-statusHeight-panelHeight)

		sidebar := lipgloss.JoinVertical(lipgloss.Left,
			m.filesPanel.View(),
			m.sessionsPanel.View(),
		)
		body = lipgloss.JoinHorizontal(lipgloss.Top, main, sidebar)
	} else {
		body = main
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.status.View())
}
