// Package identity manages the persisted session identity.
//
// The identity is the only state shared across restarts: a session token and
// a username, stored under fixed keys in a JSON file. It is read once at
// startup and written only by login and logout.
package identity

import (
	"errors"
	"path/filepath"
	"sync"

	"github.com/askbuddy/askbuddy/internal/debug"
	"github.com/askbuddy/askbuddy/internal/events"
	"github.com/askbuddy/askbuddy/internal/pubsub"
)

// ErrEmptyToken is returned when logging in without a session token.
var ErrEmptyToken = errors.New("session token cannot be empty")

// Identity is the client's view of who is logged in.
type Identity struct {
	Token    string
	Username string
}

// IsAuthenticated reports whether the identity grants access to the
// conversation features: both token and username must be present.
func (id Identity) IsAuthenticated() bool {
	return id.Token != "" && id.Username != ""
}

// StorePath returns the identity file location under the given data
// directory, so the identity moves with a configured data_directory.
func StorePath(dataDir string) string {
	return filepath.Join(dataDir, "identity.json")
}

// Manager holds the in-memory identity and keeps the persisted copy in sync.
// Storage failures leave the in-memory state correct for the process
// lifetime; they are logged, never fatal.
type Manager struct {
	store   Store
	broker  *pubsub.Broker[events.AuthEvent]
	mu      sync.RWMutex
	current Identity
}

// NewManager creates a manager over the given store. The broker is optional;
// when set, login and logout publish auth events.
func NewManager(store Store, broker *pubsub.Broker[events.AuthEvent]) *Manager {
	return &Manager{
		store:  store,
		broker: broker,
	}
}

// Restore loads the persisted identity. The restored state is authenticated
// only when both fields were present; nothing touches the network.
func (m *Manager) Restore() Identity {
	id, err := m.store.Load()
	if err != nil {
		debug.Error("identity", err, "restoring persisted identity")
		return Identity{}
	}

	if !id.IsAuthenticated() {
		// Partial state is treated as logged out.
		return Identity{}
	}

	m.mu.Lock()
	m.current = id
	m.mu.Unlock()

	return id
}

// Login sets the identity and persists it synchronously. Calling it again
// overwrites the previous identity.
func (m *Manager) Login(token, username string) error {
	if token == "" {
		return ErrEmptyToken
	}

	id := Identity{Token: token, Username: username}

	m.mu.Lock()
	m.current = id
	m.mu.Unlock()

	if err := m.store.Save(id); err != nil {
		debug.Error("identity", err, "persisting identity")
	}

	if m.broker != nil {
		m.broker.Publish(pubsub.EventCreated, events.NewLoggedInEvent(username))
	}

	return nil
}

// Logout clears the identity and wipes the persisted copy. It is safe to
// call when already logged out; storage is cleared regardless.
func (m *Manager) Logout() {
	m.mu.Lock()
	username := m.current.Username
	m.current = Identity{}
	m.mu.Unlock()

	if err := m.store.Clear(); err != nil {
		debug.Error("identity", err, "clearing persisted identity")
	}

	if m.broker != nil {
		m.broker.Publish(pubsub.EventDeleted, events.NewLoggedOutEvent(username))
	}
}

// Current returns the in-memory identity.
func (m *Manager) Current() Identity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// IsAuthenticated reports whether a complete identity is loaded.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.IsAuthenticated()
}
