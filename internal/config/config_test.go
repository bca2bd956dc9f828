package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFile(t *testing.T) {
	t.Run("reads server url and options", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "askbuddy.json")
		content := `{"server_url":"https://buddy.example.com","options":{"debug":true}}`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadFromFile(path)
		if err != nil {
			t.Fatalf("LoadFromFile() error = %v", err)
		}
		if cfg.ServerURL != "https://buddy.example.com" {
			t.Errorf("ServerURL = %s", cfg.ServerURL)
		}
		if !cfg.Debug() {
			t.Error("Debug() = false, want true")
		}
	})

	t.Run("applies defaults to an empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "askbuddy.json")
		if err := os.WriteFile(path, []byte(`{}`), 0o600); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadFromFile(path)
		if err != nil {
			t.Fatalf("LoadFromFile() error = %v", err)
		}
		if cfg.ServerURL != DefaultServerURL {
			t.Errorf("ServerURL = %s, want %s", cfg.ServerURL, DefaultServerURL)
		}
		if cfg.DataDir() == "" {
			t.Error("DataDir() is empty")
		}
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "askbuddy.json")
		if err := os.WriteFile(path, []byte(`{not json`), 0o600); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadFromFile(path); err == nil {
			t.Error("LoadFromFile() accepted malformed json")
		}
	})
}

func TestSaveToFile(t *testing.T) {
	t.Run("round trips through load", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "askbuddy.json")
		cfg := NewConfig()
		cfg.ServerURL = "https://buddy.example.com"
		cfg.Options.Debug = true

		if err := SaveToFile(cfg, path); err != nil {
			t.Fatalf("SaveToFile() error = %v", err)
		}

		loaded, err := LoadFromFile(path)
		if err != nil {
			t.Fatalf("LoadFromFile() error = %v", err)
		}
		if loaded.ServerURL != cfg.ServerURL {
			t.Errorf("ServerURL = %s, want %s", loaded.ServerURL, cfg.ServerURL)
		}
		if !loaded.Debug() {
			t.Error("debug option lost in round trip")
		}
	})
}

func TestDataDir(t *testing.T) {
	t.Run("prefers configured directory", func(t *testing.T) {
		cfg := NewConfig()
		cfg.Options.DataDir = "/tmp/buddy-data"

		if got := cfg.DataDir(); got != "/tmp/buddy-data" {
			t.Errorf("DataDir() = %s", got)
		}
	})

	t.Run("falls back to xdg data home", func(t *testing.T) {
		cfg := NewConfig()

		if got := cfg.DataDir(); got == "" {
			t.Error("DataDir() is empty without configuration")
		}
	})
}
