// Package bridge provides the connection between the pub/sub system and Bubble Tea.
package bridge

import (
	"github.com/askbuddy/askbuddy/internal/events"
	"github.com/askbuddy/askbuddy/internal/pubsub"
)

// AuthEventMsg wraps an auth event for the TUI.
type AuthEventMsg struct {
	Event pubsub.Event[events.AuthEvent]
}

// UploadEventMsg wraps an upload event for the TUI.
type UploadEventMsg struct {
	Event pubsub.Event[events.UploadEvent]
}
