package notify

import (
	"time"

	"github.com/colonyops/toast/internal/core/notify"
)

const (
	ErrorDuration          = notify.DurationLong
	PasswordChangeDuration = 6 * time.Second
)

// categoryTitles are the titles supplied when the caller does not set one.
var categoryTitles = map[notify.Type]string{
	notify.TypePasswordChange: "Password Change",
	notify.TypeLogin:          "Login",
	notify.TypeSystem:         "System",
}

func defaultTypeDurations() map[notify.Type]time.Duration {
	return map[notify.Type]time.Duration{
		notify.TypeError:          ErrorDuration,
		notify.TypePasswordChange: PasswordChangeDuration,
	}
}

// WithTypeDuration overrides the default expiry used by the helper for t.
func WithTypeDuration(t notify.Type, d time.Duration) StoreOption {
	return func(s *Store) { s.typeDurations[t] = d }
}

// Draft returns the draft a convenience helper would add for t. Options are
// applied on top of the category defaults and win.
func (s *Store) Draft(t notify.Type, message string, opts ...notify.Option) notify.Draft {
	d := notify.Draft{
		Type:     t,
		Title:    categoryTitles[t],
		Message:  message,
		Duration: s.typeDurations[t],
	}
	return d.Apply(opts...)
}

func (s *Store) Success(message string, opts ...notify.Option) (int64, bool) {
	return s.Add(s.Draft(notify.TypeSuccess, message, opts...))
}

// Error adds an error notification. Errors stay visible longer by default.
func (s *Store) Error(message string, opts ...notify.Option) (int64, bool) {
	return s.Add(s.Draft(notify.TypeError, message, opts...))
}

func (s *Store) Warning(message string, opts ...notify.Option) (int64, bool) {
	return s.Add(s.Draft(notify.TypeWarning, message, opts...))
}

func (s *Store) Info(message string, opts ...notify.Option) (int64, bool) {
	return s.Add(s.Draft(notify.TypeInfo, message, opts...))
}

func (s *Store) PasswordChange(message string, opts ...notify.Option) (int64, bool) {
	return s.Add(s.Draft(notify.TypePasswordChange, message, opts...))
}

func (s *Store) Login(message string, opts ...notify.Option) (int64, bool) {
	return s.Add(s.Draft(notify.TypeLogin, message, opts...))
}

func (s *Store) System(message string, opts ...notify.Option) (int64, bool) {
	return s.Add(s.Draft(notify.TypeSystem, message, opts...))
}
