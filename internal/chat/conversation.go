// Package chat holds the client-side conversation state and the cached
// file and session lists. The server is the source of truth; everything
// here is a cache mutated optimistically and reconciled after server acks.
package chat

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/askbuddy/askbuddy/internal/api"
)

// ErrorAnswer is appended as the agent's reply when a query fails. It is a
// permanent conversation entry, not a transient banner: a failed turn stays
// part of the record.
const ErrorAnswer = "Sorry, there was an error processing your request."

// State is the conversation lifecycle state.
type State int

const (
	// StateIdle means no history has been loaded yet.
	StateIdle State = iota
	// StateLoaded means history is present and input is accepted.
	StateLoaded
	// StateSending means a query is in flight; submissions are ignored.
	StateSending
)

// FileScope pins queries to a single uploaded file.
type FileScope struct {
	ID   string
	Name string
}

// IsSet reports whether a file is selected.
func (s FileScope) IsSet() bool {
	return s.ID != ""
}

// Conversation owns the message list, the active session token, the file
// scope, and the in-flight flag. It is mutated only from the UI loop, so it
// carries no lock.
type Conversation struct {
	token    string
	messages []api.Message
	scope    FileScope
	state    State
}

// NewConversation creates a conversation bound to the given session token.
func NewConversation(token string) *Conversation {
	return &Conversation{token: token, state: StateIdle}
}

// Token returns the active session token.
func (c *Conversation) Token() string {
	return c.token
}

// State returns the current lifecycle state.
func (c *Conversation) State() State {
	return c.state
}

// IsSending reports whether a query is in flight.
func (c *Conversation) IsSending() bool {
	return c.state == StateSending
}

// Messages returns the message list. The slice is shared; callers must not
// mutate it.
func (c *Conversation) Messages() []api.Message {
	return c.messages
}

// Scope returns the current file scope. A zero scope means queries go
// against all files.
func (c *Conversation) Scope() FileScope {
	return c.scope
}

// Submit appends the optimistic user message and enters the sending state.
// It returns false without touching anything when the text trims empty or a
// query is already in flight; each accepted submission will produce exactly
// one user entry and, via ResolveAnswer or ResolveError, exactly one agent
// entry.
func (c *Conversation) Submit(text string) (api.Message, bool) {
	text = strings.TrimSpace(text)
	if text == "" || c.state == StateSending {
		return api.Message{}, false
	}

	msg := api.Message{
		ID:        uuid.NewString(),
		Sender:    api.SenderUser,
		Text:      text,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	c.messages = append(c.messages, msg)
	c.state = StateSending

	return msg, true
}

// ResolveAnswer appends the agent's answer and re-enables sending.
func (c *Conversation) ResolveAnswer(text string) api.Message {
	return c.resolve(text)
}

// ResolveError appends the fixed error answer and re-enables sending. The
// optimistic user entry stays in place untouched.
func (c *Conversation) ResolveError() api.Message {
	return c.resolve(ErrorAnswer)
}

func (c *Conversation) resolve(text string) api.Message {
	msg := api.Message{
		ID:        uuid.NewString(),
		Sender:    api.SenderAgent,
		Text:      text,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	c.messages = append(c.messages, msg)
	c.state = StateLoaded
	return msg
}

// Replace swaps in a server-fetched history wholesale.
func (c *Conversation) Replace(msgs []api.Message) {
	c.messages = msgs
	if c.state == StateIdle {
		c.state = StateLoaded
	}
}

// Load repoints the conversation at another session and swaps in its
// history. Subsequent sends continue the loaded conversation.
func (c *Conversation) Load(token string, msgs []api.Message) {
	c.token = token
	c.messages = msgs
	c.scope = FileScope{}
	if c.state != StateSending {
		c.state = StateLoaded
	}
}

// StartNew clears the messages and the scope and repoints the active token
// in one step; no caller observes a half-cleared conversation.
func (c *Conversation) StartNew(newToken string) {
	c.token = newToken
	c.messages = nil
	c.scope = FileScope{}
	c.state = StateLoaded
}

// SelectFile pins subsequent queries to one file until the scope is cleared
// or the file is deleted.
func (c *Conversation) SelectFile(id, name string) {
	c.scope = FileScope{ID: id, Name: name}
}

// ClearFileScope returns queries to all-files mode.
func (c *Conversation) ClearFileScope() {
	c.scope = FileScope{}
}

// PruneMessage removes one message by identity. Called only after the
// server acknowledged the delete; a rejected delete never reaches here.
func (c *Conversation) PruneMessage(id string) {
	for i, m := range c.messages {
		if m.ID == id {
			c.messages = append(c.messages[:i], c.messages[i+1:]...)
			return
		}
	}
}
