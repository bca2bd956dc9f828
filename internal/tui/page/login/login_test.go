package login

import (
	"path/filepath"
	"testing"

	"github.com/askbuddy/askbuddy/internal/api"
	"github.com/askbuddy/askbuddy/internal/identity"
	"github.com/askbuddy/askbuddy/internal/tui/util"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	store := identity.NewFileStore(filepath.Join(t.TempDir(), "identity.json"))
	return New(api.NewClient("http://localhost:0"), identity.NewManager(store, nil))
}

func TestSubmitValidation(t *testing.T) {
	t.Run("requires both fields before any network call", func(t *testing.T) {
		m := newTestModel(t)
		m.username.SetValue("alice")

		cmd := m.submit()
		if cmd == nil {
			t.Fatal("expected a banner command")
		}
		if m.busy {
			t.Error("submit with a missing field must not start a request")
		}
		if m.banner == "" || m.bannerKind != util.InfoTypeError {
			t.Errorf("banner = %q kind = %v", m.banner, m.bannerKind)
		}
	})

	t.Run("ignored while a request is in flight", func(t *testing.T) {
		m := newTestModel(t)
		m.username.SetValue("alice")
		m.password.SetValue("secret")
		m.busy = true

		if cmd := m.submit(); cmd != nil {
			t.Error("submit while busy returned a command")
		}
	})
}

func TestLoginResult(t *testing.T) {
	t.Run("success stores the identity and emits SuccessMsg", func(t *testing.T) {
		m := newTestModel(t)
		m.busy = true

		_, cmd := m.Update(loginResultMsg{token: "T1", username: "alice"})
		if cmd == nil {
			t.Fatal("expected a command")
		}
		msg := cmd()
		success, ok := msg.(SuccessMsg)
		if !ok {
			t.Fatalf("command message = %T, want SuccessMsg", msg)
		}
		if success.Token != "T1" || success.Username != "alice" {
			t.Errorf("SuccessMsg = %+v", success)
		}
		if !m.identity.IsAuthenticated() {
			t.Error("identity not stored on success")
		}
	})

	t.Run("server detail surfaces verbatim", func(t *testing.T) {
		m := newTestModel(t)
		m.busy = true

		m.Update(loginResultMsg{err: &api.Error{Status: 401, Detail: "Invalid credentials"}})
		if m.banner != "Invalid credentials" {
			t.Errorf("banner = %q, want the server detail", m.banner)
		}
		if m.bannerKind != util.InfoTypeError {
			t.Errorf("banner kind = %v, want error", m.bannerKind)
		}
	})

	t.Run("transport failure shows the generic message", func(t *testing.T) {
		m := newTestModel(t)
		m.busy = true

		m.Update(loginResultMsg{err: errConnRefused{}})
		if m.banner != "Could not reach the server. Please try again." {
			t.Errorf("banner = %q", m.banner)
		}
	})
}

func TestRegisterResult(t *testing.T) {
	m := newTestModel(t)
	m.mode = ModeRegister
	m.busy = true

	m.Update(registerResultMsg{username: "alice"})

	if m.mode != ModeLogin {
		t.Error("registration success should return to the sign-in form")
	}
	if m.bannerKind != util.InfoTypeSuccess {
		t.Errorf("banner kind = %v, want success", m.bannerKind)
	}
}

func TestBannerClear(t *testing.T) {
	t.Run("clears the matching banner", func(t *testing.T) {
		m := newTestModel(t)
		m.showBanner("stale", util.InfoTypeError)

		m.Update(bannerClearMsg{seq: m.bannerSeq})
		if m.banner != "" {
			t.Errorf("banner = %q, want cleared", m.banner)
		}
	})

	t.Run("a newer banner survives an old clear", func(t *testing.T) {
		m := newTestModel(t)
		m.showBanner("first", util.InfoTypeError)
		oldSeq := m.bannerSeq
		m.showBanner("second", util.InfoTypeSuccess)

		m.Update(bannerClearMsg{seq: oldSeq})
		if m.banner != "second" {
			t.Errorf("banner = %q, want the newer banner to survive", m.banner)
		}
	})
}

type errConnRefused struct{}

func (errConnRefused) Error() string { return "dial tcp: connection refused" }
