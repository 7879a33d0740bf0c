package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/toast/internal/core/notify"
	queue "github.com/colonyops/toast/internal/notify"
)

// SnapshotMsg carries a Store broadcast into the Bubble Tea loop.
type SnapshotMsg []notify.Notification

// Feed bridges Store broadcasts into tea messages. Only the latest snapshot
// is kept: a snapshot is the whole collection, so an unread one is stale as
// soon as the next arrives. Publishing never blocks, which lets Update call
// back into the Store.
type Feed struct {
	ch          chan []notify.Notification
	unsubscribe func()

	mu        sync.Mutex
	closed    bool
	published bool
}

// NewFeed subscribes to store and seeds the feed with its current contents.
func NewFeed(store *queue.Store) *Feed {
	f := &Feed{ch: make(chan []notify.Notification, 1)}
	f.unsubscribe = store.Subscribe(f.publish)
	f.seed(store.Snapshot)
	return f
}

// seed offers the initial snapshot unless a broadcast has already arrived,
// which is at least as recent.
func (f *Feed) seed(snapshot func() []notify.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed || f.published {
		return
	}
	f.replaceLocked(snapshot())
}

func (f *Feed) publish(items []notify.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.published = true
	f.replaceLocked(items)
}

func (f *Feed) replaceLocked(items []notify.Notification) {
	select {
	case <-f.ch:
	default:
	}
	f.ch <- items
}

// Wait returns a command that resolves to the next SnapshotMsg.
func (f *Feed) Wait() tea.Cmd {
	return func() tea.Msg {
		items, ok := <-f.ch
		if !ok {
			return nil
		}
		return SnapshotMsg(items)
	}
}

// Close unsubscribes from the Store and releases any pending Wait.
func (f *Feed) Close() {
	f.unsubscribe()

	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.ch)
	}
}
