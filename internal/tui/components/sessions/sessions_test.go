package sessions

import (
	"testing"

	"github.com/askbuddy/askbuddy/internal/api"
)

func TestPanelSetSessions(t *testing.T) {
	t.Run("clamps the cursor when the list shrinks", func(t *testing.T) {
		p := NewPanel()
		p.SetSessions([]api.ChatSession{
			{SessionToken: "T1"},
			{SessionToken: "T2"},
			{SessionToken: "T3"},
		})
		p.cursor = 2

		p.SetSessions([]api.ChatSession{{SessionToken: "T1"}})
		if p.cursor != 0 {
			t.Errorf("cursor = %d, want 0", p.cursor)
		}
	})

	t.Run("empty list resets the cursor", func(t *testing.T) {
		p := NewPanel()
		p.SetSessions([]api.ChatSession{{SessionToken: "T1"}})
		p.cursor = 0

		p.SetSessions(nil)
		if p.cursor != 0 {
			t.Errorf("cursor = %d, want 0", p.cursor)
		}
	})
}

func TestPanelIgnoresInputWhenEmpty(t *testing.T) {
	p := NewPanel()
	p.SetFocused(true)

	_, cmd := p.Update(struct{}{})
	if cmd != nil {
		t.Error("empty panel produced a command")
	}
}
