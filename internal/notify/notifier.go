package notify

import (
	"time"

	"github.com/colonyops/toast/internal/core/notify"
)

// DefaultErrorDebounce collapses error storms raised through Notifier.Error.
const DefaultErrorDebounce = 2 * time.Second

// NotifierConfig holds the debounce windows used by a Notifier. Zero values
// use DefaultErrorDebounce and DefaultDebounceWindow.
type NotifierConfig struct {
	ErrorDebounce  time.Duration
	DebounceWindow time.Duration
}

// Notifier is the surface handed to application code. It forwards to a
// Store, except for Error which goes through the Debouncer.
type Notifier struct {
	store     *Store
	debouncer *Debouncer
	cfg       NotifierConfig
}

// NewNotifier wires a Notifier around store and debouncer.
func NewNotifier(store *Store, debouncer *Debouncer, cfg NotifierConfig) *Notifier {
	if cfg.ErrorDebounce <= 0 {
		cfg.ErrorDebounce = DefaultErrorDebounce
	}
	if cfg.DebounceWindow <= 0 {
		cfg.DebounceWindow = DefaultDebounceWindow
	}
	return &Notifier{
		store:     store,
		debouncer: debouncer,
		cfg:       cfg,
	}
}

// Store returns the underlying store, for renderers that need to subscribe.
func (n *Notifier) Store() *Store {
	return n.store
}

func (n *Notifier) Success(message string, opts ...notify.Option) (int64, bool) {
	return n.store.Success(message, opts...)
}

// Error queues a debounced error notification. Repeats of the same error
// inside the debounce window collapse into one, delivered after the window.
func (n *Notifier) Error(message string, opts ...notify.Option) {
	n.debouncer.Submit(n.store.Draft(notify.TypeError, message, opts...), n.cfg.ErrorDebounce)
}

func (n *Notifier) Warning(message string, opts ...notify.Option) (int64, bool) {
	return n.store.Warning(message, opts...)
}

func (n *Notifier) Info(message string, opts ...notify.Option) (int64, bool) {
	return n.store.Info(message, opts...)
}

func (n *Notifier) PasswordChange(message string, opts ...notify.Option) (int64, bool) {
	return n.store.PasswordChange(message, opts...)
}

func (n *Notifier) Login(message string, opts ...notify.Option) (int64, bool) {
	return n.store.Login(message, opts...)
}

func (n *Notifier) System(message string, opts ...notify.Option) (int64, bool) {
	return n.store.System(message, opts...)
}

// Show adds a notification of an arbitrary type without category defaults.
func (n *Notifier) Show(t notify.Type, message string, opts ...notify.Option) (int64, bool) {
	d := notify.Draft{Type: t, Message: message}
	return n.store.Add(d.Apply(opts...))
}

func (n *Notifier) Add(d notify.Draft) (int64, bool) {
	return n.store.Add(d)
}

// AddDebounced forwards d after window. A non-positive window uses the
// configured debounce window.
func (n *Notifier) AddDebounced(d notify.Draft, window time.Duration) {
	if window <= 0 {
		window = n.cfg.DebounceWindow
	}
	n.debouncer.Submit(d, window)
}

func (n *Notifier) Remove(id int64) bool {
	return n.store.Remove(id)
}

func (n *Notifier) Clear() {
	n.store.Clear()
}

// Pending returns how many debounced drafts are still waiting.
func (n *Notifier) Pending() int {
	return n.debouncer.Pending()
}

// Close cancels pending debounced deliveries.
func (n *Notifier) Close() {
	n.debouncer.Stop()
}
