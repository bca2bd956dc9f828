// Package pubsub provides a type-safe pub/sub broker implementation.
package pubsub

import (
	"context"
	"sync"
	"time"
)

// DefaultBufferSize is the default channel buffer for subscribers.
const DefaultBufferSize = 64

// EventType represents the type of event.
type EventType string

// Standard event types.
const (
	EventCreated   EventType = "created"
	EventUpdated   EventType = "updated"
	EventDeleted   EventType = "deleted"
	EventStarted   EventType = "started"
	EventCompleted EventType = "completed"
	EventFailed    EventType = "failed"
)

// Event represents a typed event with metadata.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// BrokerOption configures a Broker.
type BrokerOption[T any] func(*Broker[T])

// WithBufferSize sets the subscriber channel buffer size.
func WithBufferSize[T any](size int) BrokerOption[T] {
	return func(b *Broker[T]) {
		b.bufferSize = size
	}
}

// Broker is a type-safe pub/sub broker using Go generics.
// It is thread-safe and supports context-based subscription lifecycle.
// Publishing never blocks: events are dropped for slow subscribers.
type Broker[T any] struct {
	name       string
	subs       map[chan Event[T]]struct{}
	mu         sync.RWMutex
	done       chan struct{}
	bufferSize int
}

// NewBroker creates a new typed broker with optional configuration.
func NewBroker[T any](name string, opts ...BrokerOption[T]) *Broker[T] {
	b := &Broker[T]{
		name:       name,
		subs:       make(map[chan Event[T]]struct{}),
		done:       make(chan struct{}),
		bufferSize: DefaultBufferSize,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Name returns the broker's name for debugging.
func (b *Broker[T]) Name() string {
	return b.name
}

// Subscribe creates a new subscription that receives events until context is cancelled.
// The returned channel is closed when the context is done or the broker shuts down.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Check if broker is already shut down
	select {
	case <-b.done:
		ch := make(chan Event[T])
		close(ch)
		return ch
	default:
	}

	sub := make(chan Event[T], b.bufferSize)
	b.subs[sub] = struct{}{}

	// Cleanup goroutine
	go func() {
		select {
		case <-ctx.Done():
		case <-b.done:
		}

		b.mu.Lock()
		defer b.mu.Unlock()

		// Check if already removed (during shutdown)
		if _, ok := b.subs[sub]; !ok {
			return
		}

		delete(b.subs, sub)
		close(sub)
	}()

	return sub
}

// Publish sends an event to all subscribers.
// Events are dropped for subscribers whose buffers are full.
func (b *Broker[T]) Publish(eventType EventType, payload T) {
	// The sends below never block, so the read lock is held for the whole
	// delivery. Subscriber channels are only closed under the write lock,
	// which keeps a concurrent Shutdown from closing a channel mid-send.
	b.mu.RLock()
	defer b.mu.RUnlock()

	// Check if broker is shut down
	select {
	case <-b.done:
		return
	default:
	}

	if len(b.subs) == 0 {
		return
	}

	event := Event[T]{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	for sub := range b.subs {
		select {
		case sub <- event:
		default:
		}
	}
}

// Shutdown gracefully shuts down the broker.
// All subscriber channels are closed and pending events are dropped.
func (b *Broker[T]) Shutdown() {
	select {
	case <-b.done:
		return // Already shut down
	default:
		close(b.done)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
}

// IsShutdown returns true if the broker has been shut down.
func (b *Broker[T]) IsShutdown() bool {
	select {
	case <-b.done:
		return true
	default:
		return false
	}
}

// SubscriberCount returns the current number of subscribers.
func (b *Broker[T]) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
