package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/toast/internal/core/styles"
)

// minToastWidth leaves room for the icon, padding and a few characters.
const minToastWidth = 20

// Validate checks that the configuration is valid. All problems are reported
// together as criterio.FieldErrors.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		c.validateNotifications(),
		c.validateTUI(),
		c.validateReports(),
	)
}

func (c *Config) validateNotifications() error {
	var errs criterio.FieldErrorsBuilder

	durations := []struct {
		field string
		value time.Duration
	}{
		{"notifications.default_duration", c.Notifications.DefaultDuration},
		{"notifications.error_duration", c.Notifications.ErrorDuration},
		{"notifications.password_change_duration", c.Notifications.PasswordChangeDuration},
		{"notifications.duplicate_window", c.Notifications.DuplicateWindow},
		{"notifications.error_debounce", c.Notifications.ErrorDebounce},
		{"notifications.debounce_window", c.Notifications.DebounceWindow},
	}

	for _, d := range durations {
		if d.value < 0 {
			errs = errs.Append(d.field, fmt.Errorf("must not be negative, got %s", d.value))
		}
	}

	return errs.ToError()
}

func (c *Config) validateTUI() error {
	var errs criterio.FieldErrorsBuilder

	if c.TUI.MaxToasts < 1 {
		errs = errs.Append("tui.max_toasts", fmt.Errorf("must be at least 1"))
	}
	if c.TUI.Width < minToastWidth {
		errs = errs.Append("tui.width", fmt.Errorf("must be at least %d", minToastWidth))
	}
	if _, ok := styles.GetPalette(c.TUI.Theme); !ok {
		errs = errs.Append("tui.theme", fmt.Errorf("unknown theme %q (available: %s)",
			c.TUI.Theme, strings.Join(styles.ThemeNames(), ", ")))
	}

	return errs.ToError()
}

func (c *Config) validateReports() error {
	var errs criterio.FieldErrorsBuilder

	if c.Reports.BaseURL != "" {
		u, err := url.Parse(c.Reports.BaseURL)
		switch {
		case err != nil:
			errs = errs.Append("reports.base_url", fmt.Errorf("invalid url: %w", err))
		case u.Scheme != "http" && u.Scheme != "https":
			errs = errs.Append("reports.base_url", fmt.Errorf("scheme must be http or https"))
		}
	}
	if c.Reports.Timeout < 0 {
		errs = errs.Append("reports.timeout", fmt.Errorf("must not be negative"))
	}

	return errs.ToError()
}
