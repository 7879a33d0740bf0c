// Package notify implements the in-process notification queue: a Store that
// owns the visible notifications, a Debouncer that collapses bursts before
// they reach the Store, and a Notifier facade for application code.
package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/colonyops/toast/internal/core/logging"
	"github.com/colonyops/toast/internal/core/notify"
)

// DefaultDuplicateWindow is how long an identical notification is rejected
// after an earlier one was added.
const DefaultDuplicateWindow = time.Second

// Observer receives the full ordered collection after every mutation.
type Observer func([]notify.Notification)

type observer struct {
	id int64
	fn Observer
}

type broadcast struct {
	snapshot  []notify.Notification
	observers []observer
}

// Store owns the live set of notifications. Mutations are serialized and
// every mutation is broadcast to observers in the order it happened.
//
// Broadcasts are delivered before the mutating call returns, except when the
// call is made while another broadcast is in flight (for example an observer
// calling Remove); those are queued and delivered by the in-flight dispatcher
// once the current observer returns.
type Store struct {
	clock           clockwork.Clock
	logger          zerolog.Logger
	duplicateWindow time.Duration
	defaults        notify.Defaults
	typeDurations   map[notify.Type]time.Duration

	mu          sync.Mutex
	nextID      int64
	items       []notify.Notification
	timers      map[int64]clockwork.Timer
	observers   []observer
	nextObs     int64
	queue       []broadcast
	dispatching bool
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock sets the clock used for timestamps and expiry timers.
func WithClock(c clockwork.Clock) StoreOption {
	return func(s *Store) { s.clock = c }
}

func WithLogger(l zerolog.Logger) StoreOption {
	return func(s *Store) { s.logger = l }
}

func WithDuplicateWindow(d time.Duration) StoreOption {
	return func(s *Store) { s.duplicateWindow = d }
}

// WithDefaultDuration sets the expiry applied to drafts without a duration.
func WithDefaultDuration(d time.Duration) StoreOption {
	return func(s *Store) { s.defaults.Duration = d }
}

// NewStore creates an empty store. Each call returns an independent queue.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		clock:           clockwork.NewRealClock(),
		logger:          logging.Component("notify"),
		duplicateWindow: DefaultDuplicateWindow,
		defaults:        notify.Defaults{Duration: notify.DurationDefault},
		typeDurations:   defaultTypeDurations(),
		nextID:          1,
		timers:          make(map[int64]clockwork.Timer),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add queues a notification built from d. It returns false without touching
// the queue when an identical notification was added within the duplicate
// window.
func (s *Store) Add(d notify.Draft) (int64, bool) {
	s.mu.Lock()

	now := s.clock.Now()
	key := d.Key()
	for _, existing := range s.items {
		if existing.Key() == key && now.Sub(existing.Timestamp) < s.duplicateWindow {
			s.mu.Unlock()
			s.logger.Debug().
				Stringer("key", key).
				Int64("existing_id", existing.ID).
				Msg("duplicate notification prevented")
			return 0, false
		}
	}

	id := s.nextID
	s.nextID++

	n := d.Build(id, now, s.defaults)
	s.items = append(s.items, n)

	if !n.Persistent {
		s.timers[id] = s.clock.AfterFunc(n.Duration, func() {
			s.expire(id)
		})
	}

	s.enqueueLocked()
	s.mu.Unlock()

	s.flush()
	return id, true
}

// Remove deletes the notification with the given id and cancels its expiry.
// Unknown ids are ignored; the current collection is broadcast either way.
func (s *Store) Remove(id int64) bool {
	s.mu.Lock()
	removed := s.removeLocked(id)
	s.enqueueLocked()
	s.mu.Unlock()

	s.flush()
	return removed
}

// Clear drops every notification and cancels all pending expiries.
func (s *Store) Clear() {
	s.mu.Lock()
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
	s.items = nil
	s.enqueueLocked()
	s.mu.Unlock()

	s.flush()
}

// Subscribe registers fn for every future broadcast. The current collection
// is not replayed; use Snapshot to seed a new observer.
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers = append(s.observers, observer{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, o := range s.observers {
				if o.id == id {
					s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
					return
				}
			}
		})
	}
}

// Snapshot returns a copy of the current ordered collection.
func (s *Store) Snapshot() []notify.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Len returns the number of visible notifications.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) expire(id int64) {
	if s.Remove(id) {
		s.logger.Debug().Int64("id", id).Msg("notification expired")
	}
}

func (s *Store) removeLocked(id int64) bool {
	if timer, ok := s.timers[id]; ok {
		timer.Stop()
		delete(s.timers, id)
	}

	for i, n := range s.items {
		if n.ID == id {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) snapshotLocked() []notify.Notification {
	return clone(s.items)
}

// clone never returns nil so an empty collection still encodes as [].
func clone(items []notify.Notification) []notify.Notification {
	out := make([]notify.Notification, len(items))
	copy(out, items)
	return out
}

// enqueueLocked captures the collection and the observers registered at the
// moment of the mutation.
func (s *Store) enqueueLocked() {
	obs := make([]observer, len(s.observers))
	copy(obs, s.observers)
	s.queue = append(s.queue, broadcast{
		snapshot:  s.snapshotLocked(),
		observers: obs,
	})
}

// flush delivers queued broadcasts. Only one goroutine drains at a time so
// snapshots reach observers in mutation order.
func (s *Store) flush() {
	s.mu.Lock()
	if s.dispatching {
		s.mu.Unlock()
		return
	}
	s.dispatching = true

	for len(s.queue) > 0 {
		b := s.queue[0]
		s.queue[0] = broadcast{}
		s.queue = s.queue[1:]
		s.mu.Unlock()

		for _, o := range b.observers {
			s.deliver(o, b.snapshot)
		}

		s.mu.Lock()
	}

	s.queue = nil
	s.dispatching = false
	s.mu.Unlock()
}

func (s *Store) deliver(o observer, snapshot []notify.Notification) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().
				Int64("observer", o.id).
				Str("panic", fmt.Sprint(r)).
				Msg("observer panicked")
		}
	}()
	o.fn(clone(snapshot))
}
