package tui

import (
	"time"

	"github.com/colonyops/toast/internal/core/notify"
)

const (
	defaultMaxToasts  = 5
	toastTickInterval = 100 * time.Millisecond
	toastWidth        = 50
)

// ToastController tracks which notifications are on screen. The Store owns
// expiry; the controller only mirrors its latest snapshot and keeps the clock
// used to render countdowns.
type ToastController struct {
	toasts    []notify.Notification
	hidden    int
	maxToasts int
	now       time.Time
}

// NewToastController creates a controller showing at most maxToasts. A
// non-positive limit uses defaultMaxToasts.
func NewToastController(maxToasts int) *ToastController {
	if maxToasts <= 0 {
		maxToasts = defaultMaxToasts
	}
	return &ToastController{maxToasts: maxToasts}
}

// Sync replaces the visible stack with the newest entries of a snapshot.
// Older entries beyond the limit are counted as hidden but stay in the Store.
func (c *ToastController) Sync(items []notify.Notification) {
	c.hidden = 0
	if len(items) > c.maxToasts {
		c.hidden = len(items) - c.maxToasts
		items = items[c.hidden:]
	}
	c.toasts = append(c.toasts[:0], items...)
}

// Tick advances the render clock.
func (c *ToastController) Tick(now time.Time) {
	c.now = now
}

// Remaining reports how long n has left on screen. Persistent notifications
// and an unset render clock report zero.
func (c *ToastController) Remaining(n notify.Notification) time.Duration {
	if n.Persistent || c.now.IsZero() {
		return 0
	}
	return max(n.Timestamp.Add(n.Duration).Sub(c.now), 0)
}

// Newest returns the bottom-most toast.
func (c *ToastController) Newest() (notify.Notification, bool) {
	if len(c.toasts) == 0 {
		return notify.Notification{}, false
	}
	return c.toasts[len(c.toasts)-1], true
}

// NewestActionable returns the bottom-most toast that carries actions.
func (c *ToastController) NewestActionable() (notify.Notification, bool) {
	for i := len(c.toasts) - 1; i >= 0; i-- {
		if len(c.toasts[i].Actions) > 0 {
			return c.toasts[i], true
		}
	}
	return notify.Notification{}, false
}

func (c *ToastController) HasToasts() bool {
	return len(c.toasts) > 0
}

// Toasts returns the visible stack, oldest first.
func (c *ToastController) Toasts() []notify.Notification {
	return c.toasts
}

// Hidden returns how many older notifications did not fit on screen.
func (c *ToastController) Hidden() int {
	return c.hidden
}
