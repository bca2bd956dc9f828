package chat

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/askbuddy/askbuddy/internal/tui/util"
)

// Command message types.
type (
	// NewSessionRequestMsg requests a fresh conversation.
	NewSessionRequestMsg struct{}

	// RefreshRequestMsg requests re-fetching files, history, and sessions.
	RefreshRequestMsg struct{}

	// UploadRequestMsg requests uploading a document.
	UploadRequestMsg struct {
		Path string
	}

	// DeleteLastMessageMsg requests deleting the newest conversation entry.
	DeleteLastMessageMsg struct{}

	// LogoutRequestMsg requests signing out.
	LogoutRequestMsg struct{}

	// UnknownCommandMsg indicates an unknown slash command was entered.
	UnknownCommandMsg struct {
		Command string
	}
)

// Command represents a slash command.
type Command struct {
	Name        string
	Description string
	Handler     func(args []string) tea.Msg
}

// CommandRegistry holds registered slash commands.
type CommandRegistry struct {
	commands map[string]Command
}

// NewCommandRegistry creates a new command registry with default commands.
func NewCommandRegistry() *CommandRegistry {
	r := &CommandRegistry{
		commands: make(map[string]Command),
	}

	r.Register(Command{
		Name:        "new",
		Description: "Start a new conversation",
		Handler:     func([]string) tea.Msg { return NewSessionRequestMsg{} },
	})
	r.Register(Command{
		Name:        "refresh",
		Description: "Reload files, history, and sessions from the server",
		Handler:     func([]string) tea.Msg { return RefreshRequestMsg{} },
	})
	r.Register(Command{
		Name:        "upload",
		Description: "Upload a document: /upload <path>",
		Handler: func(args []string) tea.Msg {
			return UploadRequestMsg{Path: strings.Join(args, " ")}
		},
	})
	r.Register(Command{
		Name:        "delete",
		Description: "Delete the newest message from the conversation",
		Handler:     func([]string) tea.Msg { return DeleteLastMessageMsg{} },
	})
	r.Register(Command{
		Name:        "logout",
		Description: "Sign out and return to the login page",
		Handler:     func([]string) tea.Msg { return LogoutRequestMsg{} },
	})
	r.Register(Command{
		Name:        "quit",
		Description: "Exit Ask Buddy",
		Handler:     func([]string) tea.Msg { return tea.QuitMsg{} },
	})

	return r
}

// Register adds a command to the registry.
func (r *CommandRegistry) Register(cmd Command) {
	r.commands[cmd.Name] = cmd
}

// Parse attempts to parse input as a slash command.
// Returns the command message and true if it's a command, nil and false otherwise.
func (r *CommandRegistry) Parse(input string) (tea.Msg, bool) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return nil, false
	}

	parts := strings.Fields(input[1:])
	if len(parts) == 0 {
		return nil, false
	}

	cmdName := strings.ToLower(parts[0])
	args := parts[1:]

	cmd, ok := r.commands[cmdName]
	if !ok {
		return UnknownCommandMsg{Command: cmdName}, true
	}

	return cmd.Handler(args), true
}

// GetCommands returns all registered commands.
func (r *CommandRegistry) GetCommands() []Command {
	cmds := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	return cmds
}

// parseCommand returns a tea.Cmd if the input is a command, nil otherwise.
func (m *Model) parseCommand(input string) tea.Cmd {
	if m.commandRegistry == nil {
		m.commandRegistry = NewCommandRegistry()
	}

	msg, isCmd := m.commandRegistry.Parse(input)
	if !isCmd {
		return nil
	}

	return util.CmdHandler(msg)
}
