package notify

import (
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/colonyops/toast/internal/core/logging"
	"github.com/colonyops/toast/internal/core/notify"
	"github.com/colonyops/toast/pkg/kv"
)

// DefaultDebounceWindow is used when AddDebounced is called without a window.
const DefaultDebounceWindow = time.Second

// Adder accepts drafts for display. *Store satisfies it.
type Adder interface {
	Add(d notify.Draft) (int64, bool)
}

type pendingDraft struct {
	draft notify.Draft
	timer clockwork.Timer
}

// Debouncer delays drafts by a window and forwards only the last draft of a
// burst sharing the same key.
type Debouncer struct {
	sink    Adder
	clock   clockwork.Clock
	logger  zerolog.Logger
	pending *kv.Store[notify.Key, *pendingDraft]

	// delivering counts fired drafts not yet handed to the sink.
	delivering atomic.Int64
}

// DebouncerOption configures a Debouncer.
type DebouncerOption func(*Debouncer)

func WithDebounceClock(c clockwork.Clock) DebouncerOption {
	return func(d *Debouncer) { d.clock = c }
}

func WithDebounceLogger(l zerolog.Logger) DebouncerOption {
	return func(d *Debouncer) { d.logger = l }
}

// NewDebouncer creates a Debouncer that forwards drafts to sink.
func NewDebouncer(sink Adder, opts ...DebouncerOption) *Debouncer {
	d := &Debouncer{
		sink:    sink,
		clock:   clockwork.NewRealClock(),
		logger:  logging.Component("debounce"),
		pending: kv.New[notify.Key, *pendingDraft](),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Submit schedules draft for delivery after window. A draft already waiting
// under the same key is discarded and its timer restarted with this draft.
func (d *Debouncer) Submit(draft notify.Draft, window time.Duration) {
	key := draft.Key()

	d.pending.Upsert(key, func(old *pendingDraft, exists bool) *pendingDraft {
		if exists {
			old.timer.Stop()
			d.logger.Debug().Stringer("key", key).Msg("debounce window restarted")
		}

		p := &pendingDraft{draft: draft}
		p.timer = d.clock.AfterFunc(window, func() {
			d.fire(key, p)
		})
		return p
	})
}

// Pending returns the number of drafts not yet handed to the sink.
func (d *Debouncer) Pending() int {
	return d.pending.Len() + int(d.delivering.Load())
}

// Stop cancels every pending delivery.
func (d *Debouncer) Stop() {
	for _, p := range d.pending.Drain() {
		p.timer.Stop()
	}
}

func (d *Debouncer) fire(key notify.Key, p *pendingDraft) {
	d.delivering.Add(1)
	defer d.delivering.Add(-1)

	// A superseded timer that fired before Stop took effect no longer owns
	// the key and must not deliver.
	owned := d.pending.DeleteFunc(key, func(cur *pendingDraft) bool {
		return cur == p
	})
	if !owned {
		return
	}

	if _, ok := d.sink.Add(p.draft); !ok {
		d.logger.Debug().Stringer("key", key).Msg("debounced draft rejected as duplicate")
	}
}
