// Package config handles configuration loading and validation for toast.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/toast/internal/core/styles"
)

// Config holds the application configuration.
type Config struct {
	Notifications NotificationsConfig `yaml:"notifications"`
	TUI           TUIConfig           `yaml:"tui"`
	Reports       ReportsConfig       `yaml:"reports"`
}

// NotificationsConfig tunes the notification queue.
type NotificationsConfig struct {
	DefaultDuration        time.Duration `yaml:"default_duration"`
	ErrorDuration          time.Duration `yaml:"error_duration"`
	PasswordChangeDuration time.Duration `yaml:"password_change_duration"`
	DuplicateWindow        time.Duration `yaml:"duplicate_window"`
	ErrorDebounce          time.Duration `yaml:"error_debounce"`
	DebounceWindow         time.Duration `yaml:"debounce_window"`
}

// TUIConfig holds rendering options for the terminal renderer.
type TUIConfig struct {
	MaxToasts int    `yaml:"max_toasts"`
	Width     int    `yaml:"width"`
	Theme     string `yaml:"theme"`
}

// ReportsConfig points the reports client at its API.
type ReportsConfig struct {
	BaseURL string        `yaml:"base_url"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Notifications: NotificationsConfig{
			DefaultDuration:        5 * time.Second,
			ErrorDuration:          8 * time.Second,
			PasswordChangeDuration: 6 * time.Second,
			DuplicateWindow:        time.Second,
			ErrorDebounce:          2 * time.Second,
			DebounceWindow:         time.Second,
		},
		TUI: TUIConfig{
			MaxToasts: 5,
			Width:     50,
			Theme:     styles.DefaultTheme,
		},
		Reports: ReportsConfig{
			Timeout: 10 * time.Second,
		},
	}
}

// Load reads configuration from the given path. If configPath is empty or
// doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	n := &c.Notifications
	if n.DefaultDuration == 0 {
		n.DefaultDuration = defaults.Notifications.DefaultDuration
	}
	if n.ErrorDuration == 0 {
		n.ErrorDuration = defaults.Notifications.ErrorDuration
	}
	if n.PasswordChangeDuration == 0 {
		n.PasswordChangeDuration = defaults.Notifications.PasswordChangeDuration
	}
	if n.DuplicateWindow == 0 {
		n.DuplicateWindow = defaults.Notifications.DuplicateWindow
	}
	if n.ErrorDebounce == 0 {
		n.ErrorDebounce = defaults.Notifications.ErrorDebounce
	}
	if n.DebounceWindow == 0 {
		n.DebounceWindow = defaults.Notifications.DebounceWindow
	}

	if c.TUI.MaxToasts == 0 {
		c.TUI.MaxToasts = defaults.TUI.MaxToasts
	}
	if c.TUI.Width == 0 {
		c.TUI.Width = defaults.TUI.Width
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}

	if c.Reports.Timeout == 0 {
		c.Reports.Timeout = defaults.Reports.Timeout
	}
}
