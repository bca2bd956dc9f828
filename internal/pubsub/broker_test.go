package pubsub

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestBrokerSubscribePublish(t *testing.T) {
	t.Run("single subscriber receives events", func(t *testing.T) {
		broker := NewBroker[string]("test")
		defer broker.Shutdown()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events := broker.Subscribe(ctx)

		broker.Publish(EventCreated, "hello")

		select {
		case event := <-events:
			if event.Type != EventCreated || event.Payload != "hello" {
				t.Errorf("unexpected event: %+v", event)
			}
		case <-time.After(100 * time.Millisecond):
			t.Error("timeout waiting for event")
		}
	})

	t.Run("multiple subscribers receive same event", func(t *testing.T) {
		broker := NewBroker[int]("test")
		defer broker.Shutdown()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sub1 := broker.Subscribe(ctx)
		sub2 := broker.Subscribe(ctx)

		broker.Publish(EventUpdated, 42)

		for i, sub := range []<-chan Event[int]{sub1, sub2} {
			select {
			case event := <-sub:
				if event.Payload != 42 {
					t.Errorf("subscriber %d: expected 42, got %d", i, event.Payload)
				}
			case <-time.After(100 * time.Millisecond):
				t.Errorf("subscriber %d: timeout", i)
			}
		}
	})

	t.Run("cancelled context unsubscribes", func(t *testing.T) {
		broker := NewBroker[string]("test")
		defer broker.Shutdown()

		ctx, cancel := context.WithCancel(context.Background())

		events := broker.Subscribe(ctx)

		if broker.SubscriberCount() != 1 {
			t.Errorf("expected 1 subscriber, got %d", broker.SubscriberCount())
		}

		cancel()
		time.Sleep(50 * time.Millisecond) // Allow cleanup goroutine to run

		if broker.SubscriberCount() != 0 {
			t.Errorf("expected 0 subscribers after cancel, got %d", broker.SubscriberCount())
		}

		// Channel should be closed
		_, ok := <-events
		if ok {
			t.Error("expected channel to be closed")
		}
	})

	t.Run("publish without subscribers does not block", func(t *testing.T) {
		broker := NewBroker[string]("test")
		defer broker.Shutdown()

		done := make(chan struct{})
		go func() {
			broker.Publish(EventCreated, "nobody listening")
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
			t.Error("publish blocked with no subscribers")
		}
	})

	t.Run("full subscriber buffer drops events", func(t *testing.T) {
		broker := NewBroker[int]("test", WithBufferSize[int](1))
		defer broker.Shutdown()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events := broker.Subscribe(ctx)

		// Fill the buffer, then publish one more which must be dropped.
		broker.Publish(EventCreated, 1)
		broker.Publish(EventCreated, 2)

		select {
		case event := <-events:
			if event.Payload != 1 {
				t.Errorf("expected first event, got %d", event.Payload)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatal("timeout waiting for buffered event")
		}

		select {
		case event := <-events:
			t.Errorf("expected second event to be dropped, got %d", event.Payload)
		case <-time.After(50 * time.Millisecond):
		}
	})
}

func TestBrokerShutdown(t *testing.T) {
	t.Run("shutdown closes subscriber channels", func(t *testing.T) {
		broker := NewBroker[string]("test")

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events := broker.Subscribe(ctx)

		broker.Shutdown()

		_, ok := <-events
		if ok {
			t.Error("expected channel to be closed after shutdown")
		}

		if !broker.IsShutdown() {
			t.Error("expected IsShutdown to be true")
		}
	})

	t.Run("shutdown is idempotent", func(t *testing.T) {
		broker := NewBroker[string]("test")
		broker.Shutdown()
		broker.Shutdown() // Must not panic
	})

	t.Run("subscribe after shutdown returns closed channel", func(t *testing.T) {
		broker := NewBroker[string]("test")
		broker.Shutdown()

		events := broker.Subscribe(context.Background())
		_, ok := <-events
		if ok {
			t.Error("expected closed channel from post-shutdown subscribe")
		}
	})

	t.Run("publish after shutdown is a no-op", func(t *testing.T) {
		broker := NewBroker[string]("test")
		broker.Shutdown()
		broker.Publish(EventCreated, "ignored") // Must not panic
	})
}

func TestBrokerConcurrency(t *testing.T) {
	broker := NewBroker[int]("test")
	defer broker.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const publishers = 8
	const perPublisher = 50

	sub := broker.Subscribe(ctx)

	var wg sync.WaitGroup
	wg.Add(publishers)
	for p := 0; p < publishers; p++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perPublisher; i++ {
				broker.Publish(EventUpdated, i)
			}
		}()
	}
	wg.Wait()

	// Drain whatever arrived; the point is no race or panic, and at least
	// one event must have made it through.
	received := 0
	for {
		select {
		case <-sub:
			received++
		case <-time.After(50 * time.Millisecond):
			if received == 0 {
				t.Error("expected at least one event")
			}
			return
		}
	}
}

func TestBrokerPublishDuringShutdown(t *testing.T) {
	broker := NewBroker[int]("test")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	for i := 0; i < 4; i++ {
		broker.Subscribe(ctx)
	}

	// Publishers keep firing while the broker shuts down and closes the
	// subscriber channels. A send on a closed channel would panic here.
	stop := make(chan struct{})
	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; ; i++ {
				select {
				case <-stop:
					return
				default:
					broker.Publish(EventFailed, i)
				}
			}
		}()
	}

	time.Sleep(10 * time.Millisecond)
	broker.Shutdown()
	close(stop)
	wg.Wait()

	if !broker.IsShutdown() {
		t.Error("broker not shut down")
	}
}
