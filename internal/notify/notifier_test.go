package notify

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/toast/internal/core/notify"
)

func newTestNotifier(t *testing.T) (*Notifier, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	store := NewStore(WithClock(clock), WithLogger(zerolog.Nop()))
	debouncer := NewDebouncer(store, WithDebounceClock(clock), WithDebounceLogger(zerolog.Nop()))
	n := NewNotifier(store, debouncer, NotifierConfig{})
	t.Cleanup(n.Close)
	return n, clock
}

func TestNotifier_Error_isDebounced(t *testing.T) {
	n, clock := newTestNotifier(t)

	for range 5 {
		n.Error("request failed")
		clock.Advance(100 * time.Millisecond)
	}
	assert.Equal(t, 0, n.Store().Len())

	clock.Advance(DefaultErrorDebounce)
	require.Eventually(t, func() bool { return n.Store().Len() == 1 }, eventually, time.Millisecond)

	got := n.Store().Snapshot()[0]
	assert.Equal(t, notify.TypeError, got.Type)
	assert.Equal(t, ErrorDuration, got.Duration)
}

func TestNotifier_directHelpersReturnIDs(t *testing.T) {
	n, _ := newTestNotifier(t)

	ids := make([]int64, 0, 6)
	for _, add := range []func(string, ...notify.Option) (int64, bool){
		n.Success, n.Warning, n.Info, n.PasswordChange, n.Login, n.System,
	} {
		id, ok := add("hello")
		require.True(t, ok)
		ids = append(ids, id)
	}

	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6}, ids)
	assert.Equal(t, 6, n.Store().Len())
}

func TestNotifier_Show(t *testing.T) {
	n, _ := newTestNotifier(t)

	id, ok := n.Show(notify.TypeSystem, "maintenance at noon", notify.WithPersistent())
	require.True(t, ok)

	got := n.Store().Snapshot()[0]
	assert.Equal(t, id, got.ID)
	assert.Equal(t, notify.TypeSystem, got.Type)
	assert.Empty(t, got.Title, "Show does not apply category titles")
	assert.True(t, got.Persistent)
}

func TestNotifier_AddDebounced_defaultWindow(t *testing.T) {
	n, clock := newTestNotifier(t)

	n.AddDebounced(notify.Draft{Message: "saved"}, 0)

	clock.Advance(DefaultDebounceWindow - time.Millisecond)
	assert.Never(t, func() bool { return n.Store().Len() > 0 }, 50*time.Millisecond, 5*time.Millisecond)

	clock.Advance(time.Millisecond)
	assert.Eventually(t, func() bool { return n.Store().Len() == 1 }, eventually, time.Millisecond)
}

func TestNotifier_RemoveAndClear(t *testing.T) {
	n, _ := newTestNotifier(t)

	id, _ := n.Add(notify.Draft{Message: "a"})
	n.Add(notify.Draft{Message: "b"})

	assert.True(t, n.Remove(id))
	assert.False(t, n.Remove(id))
	assert.Equal(t, 1, n.Store().Len())

	n.Clear()
	assert.Equal(t, 0, n.Store().Len())
}

func TestNotifier_Close_dropsPendingErrors(t *testing.T) {
	n, clock := newTestNotifier(t)

	n.Error("pending")
	n.Close()

	clock.Advance(time.Minute)
	assert.Never(t, func() bool { return n.Store().Len() > 0 }, 50*time.Millisecond, 5*time.Millisecond)
}

func TestNotifier_Pending(t *testing.T) {
	n, clock := newTestNotifier(t)

	n.Error("a")
	n.AddDebounced(notify.Draft{Message: "b"}, 0)
	assert.Equal(t, 2, n.Pending())

	clock.Advance(DefaultErrorDebounce)
	assert.Eventually(t, func() bool { return n.Pending() == 0 && n.Store().Len() == 2 }, eventually, time.Millisecond)
}
