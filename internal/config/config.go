// Package config provides configuration management for the Ask Buddy CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/tidwall/sjson"
)

const (
	appName        = "askbuddy"
	configFileName = "askbuddy.json"

	// DefaultServerURL is the assistant backend used when neither the
	// config file nor the --server flag names one.
	DefaultServerURL = "http://localhost:8000"
)

// Config is the top-level configuration structure.
type Config struct {
	ServerURL string   `json:"server_url,omitempty"`
	Options   *Options `json:"options,omitempty"`
}

// Options holds optional configuration settings.
type Options struct {
	DataDir string `json:"data_directory,omitempty"`
	Debug   bool   `json:"debug,omitempty"`
}

// NewConfig creates a new Config with initialized options.
func NewConfig() *Config {
	return &Config{Options: &Options{}}
}

// DataDir returns the directory for runtime data (identity file, debug log).
func (c *Config) DataDir() string {
	if c.Options != nil && c.Options.DataDir != "" {
		return c.Options.DataDir
	}
	return filepath.Join(xdg.DataHome, appName)
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return c.Options != nil && c.Options.Debug
}

// GlobalConfigPath returns the global config file location.
func GlobalConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, configFileName)
}

// SetConfigField updates a single field in the config file using JSON path
// notation. Only the named field is touched; everything else in the file
// survives as written.
func (c *Config) SetConfigField(key string, value any) error {
	configPath := GlobalConfigPath()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			data = []byte("{}")
		} else {
			return fmt.Errorf("reading config file: %w", err)
		}
	}

	newData, err := sjson.Set(string(data), key, value)
	if err != nil {
		return fmt.Errorf("setting config field %q: %w", key, err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(newData), 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
