// Package config loads the runtime configuration for the brocode CLI:
// simulated latency, simulator cadences, the session token database path
// and the log level.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like
// "300ms" or "10s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the full runtime configuration.
type Config struct {
	// Latency is the simulated network delay applied before every
	// service operation.
	Latency Duration `yaml:"latency"`

	// ChatInterval is the cadence of the chat push simulator.
	ChatInterval Duration `yaml:"chat_interval"`

	// NotificationInterval is the cadence of the notification push
	// simulator. Kept out of phase with ChatInterval by default.
	NotificationInterval Duration `yaml:"notification_interval"`

	// TokenDB is the path of the SQLite file holding the persisted
	// session token.
	TokenDB string `yaml:"token_db"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		Latency:              Duration(300 * time.Millisecond),
		ChatInterval:         Duration(10 * time.Second),
		NotificationInterval: Duration(12 * time.Second),
		TokenDB:              filepath.Join(home, ".brocode", "session.db"),
		LogLevel:             "info",
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the runtime cannot work with.
func (c Config) Validate() error {
	if c.Latency < 0 {
		return fmt.Errorf("latency must not be negative")
	}
	if c.ChatInterval <= 0 || c.NotificationInterval <= 0 {
		return fmt.Errorf("simulator intervals must be positive")
	}
	if c.TokenDB == "" {
		return fmt.Errorf("token_db is required")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error", c.LogLevel)
	}
	return nil
}
