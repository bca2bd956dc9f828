package chat

import (
	"testing"

	"github.com/askbuddy/askbuddy/internal/api"
)

func TestListsPruneFile(t *testing.T) {
	t.Run("removes the file by identity", func(t *testing.T) {
		lists := NewLists()
		lists.SetFiles([]api.FileItem{
			{ID: "f1", FileName: "report.pdf"},
			{ID: "f2", FileName: "slides.pptx"},
		})
		conv := NewConversation("T1")

		lists.PruneFile("f1", conv)

		files := lists.Files()
		if len(files) != 1 || files[0].ID != "f2" {
			t.Errorf("files after prune = %+v", files)
		}
	})

	t.Run("clears the scope when the scoped file is pruned", func(t *testing.T) {
		lists := NewLists()
		lists.SetFiles([]api.FileItem{{ID: "f1", FileName: "report.pdf"}})
		conv := NewConversation("T1")
		conv.SelectFile("f1", "report.pdf")

		lists.PruneFile("f1", conv)

		if conv.Scope().IsSet() {
			t.Error("scope still set after the scoped file was deleted")
		}
	})

	t.Run("keeps the scope when another file is pruned", func(t *testing.T) {
		lists := NewLists()
		lists.SetFiles([]api.FileItem{
			{ID: "f1", FileName: "report.pdf"},
			{ID: "f2", FileName: "slides.pptx"},
		})
		conv := NewConversation("T1")
		conv.SelectFile("f1", "report.pdf")

		lists.PruneFile("f2", conv)

		if conv.Scope().ID != "f1" {
			t.Error("scope cleared though the scoped file survives")
		}
	})
}

func TestListsPruneSession(t *testing.T) {
	t.Run("removes the session and reports inactive", func(t *testing.T) {
		lists := NewLists()
		lists.SetSessions([]api.ChatSession{
			{SessionToken: "T0", FirstQuestion: "older"},
			{SessionToken: "T1", FirstQuestion: "current"},
		})
		conv := NewConversation("T1")

		if wasActive := lists.PruneSession("T0", conv); wasActive {
			t.Error("pruning a background session reported active")
		}
		sessions := lists.Sessions()
		if len(sessions) != 1 || sessions[0].SessionToken != "T1" {
			t.Errorf("sessions after prune = %+v", sessions)
		}
	})

	t.Run("reports active so the caller starts a new session", func(t *testing.T) {
		lists := NewLists()
		lists.SetSessions([]api.ChatSession{{SessionToken: "T1"}})
		conv := NewConversation("T1")

		if wasActive := lists.PruneSession("T1", conv); !wasActive {
			t.Error("pruning the active session not reported")
		}
	})
}

func TestListsFileName(t *testing.T) {
	lists := NewLists()
	lists.SetFiles([]api.FileItem{{ID: "f1", FileName: "report.pdf"}})

	if got := lists.FileName("f1"); got != "report.pdf" {
		t.Errorf("FileName(f1) = %q", got)
	}
	if got := lists.FileName("missing"); got != "" {
		t.Errorf("FileName(missing) = %q, want empty", got)
	}
}
