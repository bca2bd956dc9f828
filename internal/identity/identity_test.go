package identity

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/askbuddy/askbuddy/internal/events"
	"github.com/askbuddy/askbuddy/internal/pubsub"
)

func tempStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "identity.json"))
}

func TestFileStore(t *testing.T) {
	t.Run("load missing file returns empty identity", func(t *testing.T) {
		store := tempStore(t)

		id, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if id.IsAuthenticated() {
			t.Errorf("expected unauthenticated identity, got %+v", id)
		}
	})

	t.Run("save and load round trip", func(t *testing.T) {
		store := tempStore(t)

		if err := store.Save(Identity{Token: "T1", Username: "alice"}); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		id, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if id.Token != "T1" || id.Username != "alice" {
			t.Errorf("Load() = %+v, want token T1 username alice", id)
		}
	})

	t.Run("clear removes identity keys", func(t *testing.T) {
		store := tempStore(t)

		if err := store.Save(Identity{Token: "T1", Username: "alice"}); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if err := store.Clear(); err != nil {
			t.Fatalf("Clear() error = %v", err)
		}

		id, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if id.Token != "" || id.Username != "" {
			t.Errorf("expected empty identity after clear, got %+v", id)
		}
	})

	t.Run("save preserves unrelated keys", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "identity.json")
		if err := os.WriteFile(path, []byte(`{"theme":"emerald"}`), 0o600); err != nil {
			t.Fatal(err)
		}
		store := NewFileStore(path)

		if err := store.Save(Identity{Token: "T1", Username: "alice"}); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if got := string(data); !strings.Contains(got, `"theme":"emerald"`) {
			t.Errorf("unrelated key dropped, file = %s", got)
		}
	})
}

func TestStorePathFollowsDataDir(t *testing.T) {
	dir := t.TempDir()
	if got, want := StorePath(dir), filepath.Join(dir, "identity.json"); got != want {
		t.Errorf("StorePath(%q) = %q, want %q", dir, got, want)
	}
}

func TestIdentityIsAuthenticated(t *testing.T) {
	tests := []struct {
		name string
		id   Identity
		want bool
	}{
		{"token and username", Identity{Token: "T1", Username: "alice"}, true},
		{"token only", Identity{Token: "T1"}, false},
		{"username only", Identity{Username: "alice"}, false},
		{"empty", Identity{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.IsAuthenticated(); got != tt.want {
				t.Errorf("IsAuthenticated() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestManager(t *testing.T) {
	t.Run("login sets and persists identity", func(t *testing.T) {
		store := tempStore(t)
		mgr := NewManager(store, nil)

		if err := mgr.Login("T1", "alice"); err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if !mgr.IsAuthenticated() {
			t.Error("expected authenticated after login")
		}

		saved, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if saved.Token != "T1" || saved.Username != "alice" {
			t.Errorf("persisted identity = %+v", saved)
		}
	})

	t.Run("login with empty token is rejected", func(t *testing.T) {
		mgr := NewManager(tempStore(t), nil)

		if err := mgr.Login("", "alice"); err != ErrEmptyToken {
			t.Errorf("Login() error = %v, want ErrEmptyToken", err)
		}
		if mgr.IsAuthenticated() {
			t.Error("expected unauthenticated after rejected login")
		}
	})

	t.Run("logout clears memory and storage", func(t *testing.T) {
		store := tempStore(t)
		mgr := NewManager(store, nil)

		if err := mgr.Login("T1", "alice"); err != nil {
			t.Fatal(err)
		}
		mgr.Logout()

		if mgr.IsAuthenticated() {
			t.Error("expected unauthenticated after logout")
		}
		saved, err := store.Load()
		if err != nil {
			t.Fatal(err)
		}
		if saved.Token != "" || saved.Username != "" {
			t.Errorf("persisted identity not cleared: %+v", saved)
		}
	})

	t.Run("restore loads persisted identity", func(t *testing.T) {
		store := tempStore(t)
		if err := store.Save(Identity{Token: "T1", Username: "alice"}); err != nil {
			t.Fatal(err)
		}

		mgr := NewManager(store, nil)
		id := mgr.Restore()

		if id.Token != "T1" || id.Username != "alice" {
			t.Errorf("Restore() = %+v", id)
		}
		if !mgr.IsAuthenticated() {
			t.Error("expected authenticated after restore")
		}
	})

	t.Run("restore with partial identity stays logged out", func(t *testing.T) {
		store := tempStore(t)
		if err := store.Save(Identity{Token: "T1"}); err != nil {
			t.Fatal(err)
		}

		mgr := NewManager(store, nil)
		id := mgr.Restore()

		if id.IsAuthenticated() || mgr.IsAuthenticated() {
			t.Error("partial identity must not authenticate")
		}
	})

	t.Run("login publishes auth event", func(t *testing.T) {
		broker := pubsub.NewBroker[events.AuthEvent]("auth")
		defer broker.Shutdown()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		ch := broker.Subscribe(ctx)

		mgr := NewManager(tempStore(t), broker)
		if err := mgr.Login("T1", "alice"); err != nil {
			t.Fatal(err)
		}

		select {
		case ev := <-ch:
			if ev.Payload.Type != events.AuthEventLoggedIn {
				t.Errorf("event type = %s, want %s", ev.Payload.Type, events.AuthEventLoggedIn)
			}
			if ev.Payload.Username != "alice" {
				t.Errorf("event username = %s, want alice", ev.Payload.Username)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for auth event")
		}
	})

	t.Run("logout publishes auth event", func(t *testing.T) {
		broker := pubsub.NewBroker[events.AuthEvent]("auth")
		defer broker.Shutdown()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		ch := broker.Subscribe(ctx)

		mgr := NewManager(tempStore(t), broker)
		if err := mgr.Login("T1", "alice"); err != nil {
			t.Fatal(err)
		}
		<-ch // drain the login event
		mgr.Logout()

		select {
		case ev := <-ch:
			if ev.Payload.Type != events.AuthEventLoggedOut {
				t.Errorf("event type = %s, want %s", ev.Payload.Type, events.AuthEventLoggedOut)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for auth event")
		}
	})
}
