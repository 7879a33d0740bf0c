package logutils

import (
	"bytes"
	"io"
	"sync"
)

// Deferred holds log output in memory while a full-screen program owns the
// terminal. Flush replays it once the terminal is released. Safe for
// concurrent use.
type Deferred struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (d *Deferred) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf.Write(p)
}

// Flush writes everything held so far to w and empties the buffer.
func (d *Deferred) Flush(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.buf.Len() == 0 {
		return nil
	}
	_, err := d.buf.WriteTo(w)
	return err
}

// Len returns the number of bytes waiting to be flushed.
func (d *Deferred) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf.Len()
}
