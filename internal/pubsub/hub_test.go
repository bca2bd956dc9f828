package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/askbuddy/askbuddy/internal/events"
)

func TestHub(t *testing.T) {
	t.Run("brokers are initialized", func(t *testing.T) {
		hub := NewHub()
		defer hub.Shutdown()

		if hub.Auth == nil || hub.Upload == nil {
			t.Fatal("expected all brokers to be initialized")
		}
	})

	t.Run("events flow through hub brokers", func(t *testing.T) {
		hub := NewHub()
		defer hub.Shutdown()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sub := hub.Auth.Subscribe(ctx)
		hub.Auth.Publish(EventCreated, events.NewLoggedInEvent("alice"))

		select {
		case event := <-sub:
			if event.Payload.Username != "alice" {
				t.Errorf("expected alice, got %q", event.Payload.Username)
			}
			if event.Payload.Type != events.AuthEventLoggedIn {
				t.Errorf("unexpected event type: %s", event.Payload.Type)
			}
		case <-time.After(100 * time.Millisecond):
			t.Error("timeout waiting for auth event")
		}
	})

	t.Run("shutdown closes all brokers", func(t *testing.T) {
		hub := NewHub()
		hub.Shutdown()

		if !hub.Auth.IsShutdown() {
			t.Error("expected auth broker to be shut down")
		}
		if !hub.Upload.IsShutdown() {
			t.Error("expected upload broker to be shut down")
		}
		if !hub.IsShutdown() {
			t.Error("expected hub to report shut down")
		}

		select {
		case <-hub.Done():
		default:
			t.Error("expected Done channel to be closed")
		}

		hub.Shutdown() // Idempotent
	})
}
