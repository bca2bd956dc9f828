package bridge

import (
	"context"
	"sync"

	tea "charm.land/bubbletea/v2"

	"github.com/askbuddy/askbuddy/internal/debug"
	"github.com/askbuddy/askbuddy/internal/pubsub"
)

// Sender receives Bubble Tea messages from outside the update loop.
// *tea.Program satisfies it.
type Sender interface {
	Send(tea.Msg)
}

// TUIBridge subscribes to all Hub brokers and forwards events to the
// program. It handles the conversion from domain events to Bubble Tea
// messages.
type TUIBridge struct {
	hub     *pubsub.Hub
	program Sender

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTUIBridge creates a new TUI bridge.
func NewTUIBridge(hub *pubsub.Hub, program Sender) *TUIBridge {
	return &TUIBridge{
		hub:     hub,
		program: program,
	}
}

// Start begins forwarding events to the TUI.
// Call Stop() to gracefully shut down.
func (b *TUIBridge) Start(ctx context.Context) {
	b.ctx, b.cancel = context.WithCancel(ctx)

	b.wg.Add(2)
	go b.subscribeAuth()
	go b.subscribeUpload()

	debug.Event("bridge", "start", "TUI bridge started")
}

// Stop gracefully shuts down the bridge.
func (b *TUIBridge) Stop() {
	if b.cancel != nil {
		b.cancel()
	}
	b.wg.Wait()
	debug.Event("bridge", "stop", "TUI bridge stopped")
}

func (b *TUIBridge) subscribeAuth() {
	defer b.wg.Done()

	events := b.hub.Auth.Subscribe(b.ctx)
	for {
		select {
		case <-b.ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}

			b.program.Send(AuthEventMsg{Event: event})
		}
	}
}

func (b *TUIBridge) subscribeUpload() {
	defer b.wg.Done()

	events := b.hub.Upload.Subscribe(b.ctx)
	for {
		select {
		case <-b.ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}

			b.program.Send(UploadEventMsg{Event: event})
		}
	}
}
