package pipe

import (
	"fmt"
	"time"

	"github.com/colonyops/toast/internal/core/notify"
)

// Op names the operation a Command performs.
type Op string

const (
	OpAdd      Op = "add"
	OpDebounce Op = "debounce"
	OpRemove   Op = "remove"
	OpClear    Op = "clear"
)

// Command is one line of pipe input. Durations are milliseconds.
type Command struct {
	Op         Op            `json:"op"`
	Type       string        `json:"type"`
	Title      string        `json:"title"`
	Message    string        `json:"message"`
	DurationMS int64         `json:"duration_ms"`
	Persistent bool          `json:"persistent"`
	Actions    []ActionInput `json:"actions"`
	WindowMS   int64         `json:"window_ms"`
	ID         int64         `json:"id"`
}

type ActionInput struct {
	Label   string `json:"label"`
	Primary bool   `json:"primary"`
}

// Draft converts the command into a draft for the Store.
func (c Command) Draft() (notify.Draft, error) {
	t, err := notify.ParseType(c.Type)
	if err != nil {
		return notify.Draft{}, err
	}
	if c.DurationMS < 0 {
		return notify.Draft{}, fmt.Errorf("duration_ms must not be negative")
	}

	d := notify.Draft{
		Type:       t,
		Title:      c.Title,
		Message:    c.Message,
		Duration:   time.Duration(c.DurationMS) * time.Millisecond,
		Persistent: c.Persistent,
	}
	for _, a := range c.Actions {
		d.Actions = append(d.Actions, notify.Action{Label: a.Label, Primary: a.Primary})
	}
	return d, nil
}

// Window is the debounce window; zero defers to the Notifier default.
func (c Command) Window() time.Duration {
	return time.Duration(c.WindowMS) * time.Millisecond
}
