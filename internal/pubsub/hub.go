package pubsub

import (
	"sync"

	"github.com/askbuddy/askbuddy/internal/events"
)

// Hub is the central container for all domain brokers.
type Hub struct {
	Auth   *Broker[events.AuthEvent]
	Upload *Broker[events.UploadEvent]

	done chan struct{}
}

// NewHub creates a new Hub with all domain brokers initialized.
func NewHub() *Hub {
	return &Hub{
		Auth:   NewBroker[events.AuthEvent]("auth"),
		Upload: NewBroker[events.UploadEvent]("upload"),
		done:   make(chan struct{}),
	}
}

// Shutdown gracefully shuts down all brokers.
func (h *Hub) Shutdown() {
	select {
	case <-h.done:
		return // Already shut down
	default:
		close(h.done)
	}

	// Shutdown all brokers concurrently
	var wg sync.WaitGroup
	wg.Add(2)

	go func() { defer wg.Done(); h.Auth.Shutdown() }()
	go func() { defer wg.Done(); h.Upload.Shutdown() }()

	wg.Wait()
}

// IsShutdown returns true if the hub has been shut down.
func (h *Hub) IsShutdown() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Done returns a channel that's closed when the hub is shut down.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}
