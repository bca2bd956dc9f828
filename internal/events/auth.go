// Package events defines the domain events published on the pubsub hub.
package events

import "time"

// AuthEventType represents auth-specific event types.
type AuthEventType string

// Auth event type constants.
const (
	AuthEventLoggedIn  AuthEventType = "logged_in"
	AuthEventLoggedOut AuthEventType = "logged_out"
)

// AuthEvent represents a change to the stored identity.
type AuthEvent struct {
	Type      AuthEventType
	Username  string
	Timestamp time.Time
}

// NewLoggedInEvent creates a logged-in event.
func NewLoggedInEvent(username string) AuthEvent {
	return AuthEvent{
		Type:      AuthEventLoggedIn,
		Username:  username,
		Timestamp: time.Now(),
	}
}

// NewLoggedOutEvent creates a logged-out event.
func NewLoggedOutEvent(username string) AuthEvent {
	return AuthEvent{
		Type:      AuthEventLoggedOut,
		Username:  username,
		Timestamp: time.Now(),
	}
}
