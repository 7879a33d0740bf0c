// Package pipe is a headless renderer: it reads notification commands as JSON
// lines, applies them to a Notifier and writes every Store broadcast as a JSON
// line.
package pipe

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/colonyops/toast/internal/core/logging"
	"github.com/colonyops/toast/internal/core/notify"
	queue "github.com/colonyops/toast/internal/notify"
	"github.com/colonyops/toast/pkg/iojson"
)

const (
	pollInterval = 50 * time.Millisecond

	// DefaultMaxLineSize bounds a single input line.
	DefaultMaxLineSize = 1 << 20
)

var errLineTooLong = errors.New("line exceeds maximum size")

// Frame is one broadcast as written to the output stream.
type Frame struct {
	Seq           int                   `json:"seq"`
	Notifications []notify.Notification `json:"notifications"`
}

// Runner drives a Notifier from a command stream.
type Runner struct {
	notifier *queue.Notifier
	out      io.Writer
	errOut   io.Writer
	clock    clockwork.Clock
	logger   zerolog.Logger
	maxLine  int

	mu        sync.Mutex
	seq       int
	writeErr  error
	frameIdle bool
}

type Option func(*Runner)

func WithClock(c clockwork.Clock) Option {
	return func(r *Runner) { r.clock = c }
}

func WithLogger(l zerolog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithMaxLineSize sets the longest accepted input line in bytes. Longer lines
// are reported and skipped.
func WithMaxLineSize(n int) Option {
	return func(r *Runner) { r.maxLine = n }
}

// NewRunner writes frames to out and per-line input errors to errOut.
func NewRunner(notifier *queue.Notifier, out, errOut io.Writer, opts ...Option) *Runner {
	r := &Runner{
		notifier:  notifier,
		out:       out,
		errOut:    errOut,
		clock:     clockwork.NewRealClock(),
		logger:    logging.Component("pipe"),
		maxLine:   DefaultMaxLineSize,
		frameIdle: true, // nothing written yet
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.maxLine <= 0 {
		r.maxLine = DefaultMaxLineSize
	}
	return r
}

// Run applies every command read from in. With wait set it then blocks until
// debounced drafts have been delivered and every non-persistent notification
// has expired, or until ctx is done.
func (r *Runner) Run(ctx context.Context, in io.Reader, wait bool) error {
	unsubscribe := r.notifier.Store().Subscribe(r.writeFrame)
	defer unsubscribe()

	br := bufio.NewReader(in)
	line := 0
	for {
		raw, err := readLine(br, r.maxLine)
		if errors.Is(err, io.EOF) && len(raw) == 0 {
			break
		}
		line++
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}

		switch {
		case errors.Is(err, errLineTooLong):
			r.reject(ctx, line, fmt.Errorf("%w (%d bytes)", err, r.maxLine))
			continue
		case err != nil && !errors.Is(err, io.EOF):
			return fmt.Errorf("read commands: %w", err)
		}

		if len(raw) > 0 {
			if aerr := r.apply(raw); aerr != nil {
				r.reject(ctx, line, aerr)
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}
	}
	if err := r.writeError(); err != nil {
		return err
	}

	r.logger.Debug().Ctx(ctx).Int("lines", line).Bool("wait", wait).Msg("input consumed")

	if wait {
		if err := r.waitIdle(ctx); err != nil {
			return err
		}
	}

	return r.writeError()
}

// reject reports a skipped input line on errOut. Write failures are kept and
// returned by Run.
func (r *Runner) reject(ctx context.Context, line int, err error) {
	r.logger.Warn().Ctx(ctx).Err(err).Int("line", line).Msg("skipping invalid command")
	if werr := iojson.WriteErrorWith(r.errOut, err.Error(), map[string]any{"line": line}); werr != nil {
		r.mu.Lock()
		if r.writeErr == nil {
			r.writeErr = fmt.Errorf("write error: %w", werr)
		}
		r.mu.Unlock()
	}
}

func (r *Runner) writeError() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writeErr
}

// readLine returns the next line without its terminator. A line longer than
// limit is consumed and reported as errLineTooLong.
func readLine(br *bufio.Reader, limit int) ([]byte, error) {
	var buf []byte
	for {
		chunk, err := br.ReadSlice('\n')
		if len(buf)+len(chunk) > limit+1 {
			for errors.Is(err, bufio.ErrBufferFull) {
				_, err = br.ReadSlice('\n')
			}
			if err != nil && !errors.Is(err, io.EOF) {
				return nil, err
			}
			return nil, errLineTooLong
		}
		buf = append(buf, chunk...)
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		return bytes.TrimRight(buf, "\r\n"), err
	}
}

func (r *Runner) apply(raw []byte) error {
	var cmd Command
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return fmt.Errorf("decode command: %w", err)
	}

	switch cmd.Op {
	case OpAdd, "":
		d, err := cmd.Draft()
		if err != nil {
			return err
		}
		if _, ok := r.notifier.Add(d); !ok {
			r.logger.Debug().Str("message", d.Message).Msg("duplicate dropped")
		}
	case OpDebounce:
		d, err := cmd.Draft()
		if err != nil {
			return err
		}
		r.notifier.AddDebounced(d, cmd.Window())
	case OpRemove:
		r.notifier.Remove(cmd.ID)
	case OpClear:
		r.notifier.Clear()
	default:
		return fmt.Errorf("unknown op %q", cmd.Op)
	}
	return nil
}

// writeFrame runs on the Store's dispatcher, which delivers one broadcast at
// a time.
func (r *Runner) writeFrame(items []notify.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	r.frameIdle = allPersistent(items)
	if err := iojson.WriteLine(r.out, Frame{Seq: r.seq, Notifications: items}); err != nil && r.writeErr == nil {
		r.writeErr = fmt.Errorf("write frame: %w", err)
	}
}

func (r *Runner) waitIdle(ctx context.Context) error {
	ticker := r.clock.NewTicker(pollInterval)
	defer ticker.Stop()

	for !r.idle() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.Chan():
		}
	}
	return nil
}

// idle requires the last written frame to agree with the Store, so Run does
// not return between an expiry and the frame that reports it.
func (r *Runner) idle() bool {
	if r.notifier.Pending() > 0 {
		return false
	}
	if !allPersistent(r.notifier.Store().Snapshot()) {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frameIdle
}

func allPersistent(items []notify.Notification) bool {
	for _, n := range items {
		if !n.Persistent {
			return false
		}
	}
	return true
}
