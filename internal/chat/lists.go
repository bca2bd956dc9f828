package chat

import "github.com/askbuddy/askbuddy/internal/api"

// Lists caches the server's file and session lists. Refreshes replace each
// list wholesale; deletes prune by identity only after the server ack.
type Lists struct {
	files    []api.FileItem
	sessions []api.ChatSession
}

// NewLists creates empty list caches.
func NewLists() *Lists {
	return &Lists{}
}

// Files returns the cached file list.
func (l *Lists) Files() []api.FileItem {
	return l.files
}

// Sessions returns the cached session list.
func (l *Lists) Sessions() []api.ChatSession {
	return l.sessions
}

// SetFiles replaces the file list from a server fetch.
func (l *Lists) SetFiles(files []api.FileItem) {
	l.files = files
}

// SetSessions replaces the session list from a server fetch.
func (l *Lists) SetSessions(sessions []api.ChatSession) {
	l.sessions = sessions
}

// FileName returns the display name for a file ID, or "" when unknown.
func (l *Lists) FileName(id string) string {
	for _, f := range l.files {
		if f.ID == id {
			return f.FileName
		}
	}
	return ""
}

// PruneFile removes a file after a server-acknowledged delete. When the
// pruned file is the conversation's current scope, the scope is cleared in
// the same step so no query can go out against a deleted file.
func (l *Lists) PruneFile(id string, conv *Conversation) {
	for i, f := range l.files {
		if f.ID == id {
			l.files = append(l.files[:i], l.files[i+1:]...)
			break
		}
	}
	if conv != nil && conv.Scope().ID == id {
		conv.ClearFileScope()
	}
}

// PruneSession removes a session after a server-acknowledged delete and
// reports whether it was the active one; when it was, the caller must start
// a new session before treating the delete as complete.
func (l *Lists) PruneSession(token string, conv *Conversation) (wasActive bool) {
	for i, s := range l.sessions {
		if s.SessionToken == token {
			l.sessions = append(l.sessions[:i], l.sessions[i+1:]...)
			break
		}
	}
	return conv != nil && conv.Token() == token
}
