package notify

import "time"

// Draft carries the caller-supplied fields of a notification. Zero values
// mean "use the default".
type Draft struct {
	Type       Type          `json:"type,omitempty"`
	Title      string        `json:"title,omitempty"`
	Message    string        `json:"message,omitempty"`
	Duration   time.Duration `json:"duration,omitempty"`
	Persistent bool          `json:"persistent,omitempty"`
	Actions    []Action      `json:"actions,omitempty"`
}

// Option overrides a single draft field.
type Option func(*Draft)

func WithType(t Type) Option {
	return func(d *Draft) { d.Type = t }
}

func WithTitle(title string) Option {
	return func(d *Draft) { d.Title = title }
}

func WithMessage(message string) Option {
	return func(d *Draft) { d.Message = message }
}

func WithDuration(duration time.Duration) Option {
	return func(d *Draft) { d.Duration = duration }
}

// WithPersistent exempts the notification from auto-expiry.
func WithPersistent() Option {
	return func(d *Draft) { d.Persistent = true }
}

func WithActions(actions ...Action) Option {
	return func(d *Draft) { d.Actions = actions }
}

// Apply returns a copy of d with opts applied in order.
func (d Draft) Apply(opts ...Option) Draft {
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// Key returns the identity the draft will have once built.
func (d Draft) Key() Key {
	t := d.Type
	if t == "" {
		t = TypeInfo
	}
	return Key{Type: t, Title: d.Title, Message: d.Message}
}

// Defaults holds the values substituted for unset draft fields.
type Defaults struct {
	Duration time.Duration
}

// Build turns the draft into a Notification. A non-positive duration falls
// back to defaults.Duration; Persistent still disables expiry regardless.
func (d Draft) Build(id int64, now time.Time, defaults Defaults) Notification {
	duration := d.Duration
	if duration <= 0 {
		duration = defaults.Duration
	}
	if duration <= 0 {
		duration = DurationDefault
	}

	actions := d.Actions
	if actions == nil {
		actions = []Action{}
	}

	key := d.Key()
	return Notification{
		ID:         id,
		Type:       key.Type,
		Title:      d.Title,
		Message:    d.Message,
		Duration:   duration,
		Persistent: d.Persistent,
		Actions:    actions,
		Timestamp:  now,
	}
}
