// Package notify defines the notification record, its draft form and the
// defaults shared by every producer and renderer.
package notify

import (
	"fmt"
	"time"
)

// Type classifies a notification for display.
type Type string

const (
	TypeSuccess        Type = "success"
	TypeError          Type = "error"
	TypeWarning        Type = "warning"
	TypeInfo           Type = "info"
	TypePasswordChange Type = "password_change"
	TypeLogin          Type = "login"
	TypeSystem         Type = "system"
)

// Types lists every supported notification type in display order.
var Types = []Type{
	TypeSuccess,
	TypeError,
	TypeWarning,
	TypeInfo,
	TypePasswordChange,
	TypeLogin,
	TypeSystem,
}

// Valid reports whether t is one of the known types.
func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// ParseType converts a user-provided string into a Type. An empty string
// yields TypeInfo.
func ParseType(s string) (Type, error) {
	if s == "" {
		return TypeInfo, nil
	}
	t := Type(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown notification type %q", s)
	}
	return t, nil
}

// Duration presets.
const (
	DurationShort   = 3 * time.Second
	DurationDefault = 5 * time.Second
	DurationLong    = 8 * time.Second
)

// Action is a button attached to a notification. OnClick is invoked by the
// rendering layer, never by the store.
type Action struct {
	Label   string `json:"label"`
	OnClick func() `json:"-"`
	Primary bool   `json:"primary,omitempty"`
}

// Notification is a single queued alert. It is never mutated after the
// store creates it.
type Notification struct {
	ID         int64         `json:"id"`
	Type       Type          `json:"type"`
	Title      string        `json:"title"`
	Message    string        `json:"message"`
	Duration   time.Duration `json:"duration"`
	Persistent bool          `json:"persistent"`
	Actions    []Action      `json:"actions"`
	Timestamp  time.Time     `json:"timestamp"`
}

// Key returns the identity used for duplicate suppression and debouncing.
func (n Notification) Key() Key {
	return Key{Type: n.Type, Title: n.Title, Message: n.Message}
}

// DefaultAction returns the action a single confirm key should trigger: the
// first primary action, else the first action.
func (n Notification) DefaultAction() (Action, bool) {
	for _, a := range n.Actions {
		if a.Primary {
			return a, true
		}
	}
	if len(n.Actions) > 0 {
		return n.Actions[0], true
	}
	return Action{}, false
}

// Key identifies "the same" notification across calls.
type Key struct {
	Type    Type
	Title   string
	Message string
}

// String renders the key for logs.
func (k Key) String() string {
	return fmt.Sprintf("%s/%q/%q", k.Type, k.Title, k.Message)
}
