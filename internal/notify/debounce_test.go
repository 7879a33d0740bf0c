package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/toast/internal/core/notify"
)

// sinkRecorder is an Adder that records delivered drafts with their time.
type sinkRecorder struct {
	clock clockwork.Clock

	mu     sync.Mutex
	drafts []notify.Draft
	at     []time.Time
}

func (r *sinkRecorder) Add(d notify.Draft) (int64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drafts = append(r.drafts, d)
	r.at = append(r.at, r.clock.Now())
	return int64(len(r.drafts)), true
}

func (r *sinkRecorder) delivered() []notify.Draft {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notify.Draft, len(r.drafts))
	copy(out, r.drafts)
	return out
}

func newTestDebouncer(t *testing.T) (*Debouncer, *sinkRecorder, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	sink := &sinkRecorder{clock: clock}
	d := NewDebouncer(sink, WithDebounceClock(clock), WithDebounceLogger(zerolog.Nop()))
	return d, sink, clock
}

func TestDebouncer_burstDeliversLastDraftOnce(t *testing.T) {
	d, sink, clock := newTestDebouncer(t)
	window := 2 * time.Second

	for i := range 5 {
		d.Submit(notify.Draft{
			Type:     notify.TypeError,
			Message:  "connection lost",
			Duration: time.Duration(i+1) * time.Second,
		}, window)
		clock.Advance(100 * time.Millisecond)
	}
	lastCall := clock.Now().Add(-100 * time.Millisecond)

	assert.Equal(t, 1, d.Pending())
	assert.Empty(t, sink.delivered())

	clock.Advance(window - 200*time.Millisecond)
	assert.Never(t, func() bool { return len(sink.delivered()) > 0 }, 50*time.Millisecond, 5*time.Millisecond)

	clock.Advance(100 * time.Millisecond)
	require.Eventually(t, func() bool { return len(sink.delivered()) == 1 }, eventually, time.Millisecond)

	got := sink.delivered()[0]
	assert.Equal(t, 5*time.Second, got.Duration, "the fifth draft wins")
	sink.mu.Lock()
	assert.Equal(t, lastCall.Add(window), sink.at[0])
	sink.mu.Unlock()
	assert.Eventually(t, func() bool { return d.Pending() == 0 }, eventually, time.Millisecond)

	clock.Advance(time.Minute)
	assert.Never(t, func() bool { return len(sink.delivered()) > 1 }, 50*time.Millisecond, 5*time.Millisecond)
}

func TestDebouncer_distinctKeysAreIndependent(t *testing.T) {
	d, sink, clock := newTestDebouncer(t)

	d.Submit(notify.Draft{Message: "a"}, time.Second)
	d.Submit(notify.Draft{Message: "b"}, time.Second)
	d.Submit(notify.Draft{Type: notify.TypeError, Message: "a"}, time.Second)

	assert.Equal(t, 3, d.Pending())

	clock.Advance(time.Second)
	assert.Eventually(t, func() bool { return len(sink.delivered()) == 3 }, eventually, time.Millisecond)
}

func TestDebouncer_separatedCallsBothDeliver(t *testing.T) {
	d, sink, clock := newTestDebouncer(t)

	d.Submit(notify.Draft{Message: "tick"}, time.Second)
	clock.Advance(time.Second)
	require.Eventually(t, func() bool { return len(sink.delivered()) == 1 }, eventually, time.Millisecond)
	require.Eventually(t, func() bool { return d.Pending() == 0 }, eventually, time.Millisecond)

	d.Submit(notify.Draft{Message: "tick"}, time.Second)
	clock.Advance(time.Second)
	assert.Eventually(t, func() bool { return len(sink.delivered()) == 2 }, eventually, time.Millisecond)
}

func TestDebouncer_Stop(t *testing.T) {
	d, sink, clock := newTestDebouncer(t)

	d.Submit(notify.Draft{Message: "a"}, time.Second)
	d.Submit(notify.Draft{Message: "b"}, time.Second)
	d.Stop()

	assert.Equal(t, 0, d.Pending())
	clock.Advance(time.Minute)
	assert.Never(t, func() bool { return len(sink.delivered()) > 0 }, 50*time.Millisecond, 5*time.Millisecond)
}

func TestDebouncer_deliversIntoStore(t *testing.T) {
	clock := clockwork.NewFakeClock()
	store := NewStore(WithClock(clock), WithLogger(zerolog.Nop()))
	d := NewDebouncer(store, WithDebounceClock(clock), WithDebounceLogger(zerolog.Nop()))

	for range 5 {
		d.Submit(notify.Draft{Type: notify.TypeError, Message: "storm", Persistent: true}, 2*time.Second)
	}
	assert.Equal(t, 0, store.Len())

	clock.Advance(2 * time.Second)
	require.Eventually(t, func() bool { return store.Len() == 1 }, eventually, time.Millisecond)
	assert.Equal(t, "storm", store.Snapshot()[0].Message)
}
