// Package watcher reports debounced file changes from fsnotify.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDelay is the quiet period before a batch of changes is delivered.
const DefaultDelay = 200 * time.Millisecond

// ErrNoHandler is returned by Run when handle is nil.
var ErrNoHandler = errors.New("watcher: nil handler")

// Op is the kind of change observed for a path.
type Op int

const (
	OpCreated Op = iota
	OpModified
	OpRemoved
	OpRenamed
)

// String returns the string representation of the Op.
func (o Op) String() string {
	switch o {
	case OpCreated:
		return "created"
	case OpModified:
		return "modified"
	case OpRemoved:
		return "removed"
	case OpRenamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// Gone reports whether the path no longer exists under its name.
func (o Op) Gone() bool {
	return o == OpRemoved || o == OpRenamed
}

// Event is a single debounced change.
type Event struct {
	Path string
	Op   Op
}

// Filter decides whether a path is reported. All filters must accept it.
type Filter func(path string) bool

// Handler receives each batch of changes, sorted by path.
type Handler func(ctx context.Context, events []Event)

// Watcher watches directories and delivers debounced batches of events.
type Watcher struct {
	fs        *fsnotify.Watcher
	debouncer *Debouncer
	logger    *slog.Logger

	mu      sync.RWMutex
	filters []Filter
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger used for watch errors.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New creates a Watcher that waits delay after the last change before
// delivering a batch. A non-positive delay means DefaultDelay.
func New(delay time.Duration, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watcher: %w", err)
	}

	w := &Watcher{
		fs:        fsw,
		debouncer: NewDebouncer(delay),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Add starts watching a directory. Files are watched through their directory
// so that editors replacing a file by rename are still observed.
func (w *Watcher) Add(dir string) error {
	if err := w.fs.Add(filepath.Clean(dir)); err != nil {
		return fmt.Errorf("watcher: watching %s: %w", dir, err)
	}
	return nil
}

// AddFilter adds a path filter.
func (w *Watcher) AddFilter(filter Filter) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.filters = append(w.filters, filter)
}

// Run delivers batches to handle until ctx is cancelled, then releases the
// underlying watcher. Batches are handled one at a time on the calling goroutine.
func (w *Watcher) Run(ctx context.Context, handle Handler) error {
	if handle == nil {
		_ = w.fs.Close()
		return ErrNoHandler
	}
	defer func() { _ = w.fs.Close() }()
	defer w.debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if e, keep := w.translate(ev); keep {
				w.debouncer.Add(e)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watch error", "error", err)
		case <-w.debouncer.Ready():
			if batch := w.debouncer.Drain(); len(batch) > 0 {
				handle(ctx, batch)
			}
		}
	}
}

// Close releases the watcher without running it.
func (w *Watcher) Close() error {
	w.debouncer.Stop()
	return w.fs.Close()
}

// translate maps an fsnotify event and applies the filters.
func (w *Watcher) translate(ev fsnotify.Event) (Event, bool) {
	w.mu.RLock()
	filters := w.filters
	w.mu.RUnlock()

	for _, filter := range filters {
		if !filter(ev.Name) {
			return Event{}, false
		}
	}

	var op Op
	switch {
	case ev.Has(fsnotify.Create):
		op = OpCreated
	case ev.Has(fsnotify.Write):
		op = OpModified
	case ev.Has(fsnotify.Remove):
		op = OpRemoved
	case ev.Has(fsnotify.Rename):
		op = OpRenamed
	default:
		// chmod only
		return Event{}, false
	}
	return Event{Path: ev.Name, Op: op}, true
}

// Debouncer groups rapid changes, keeping the last Op seen per path.
// It is not safe for concurrent use; Watcher drives it from one goroutine.
type Debouncer struct {
	delay   time.Duration
	timer   *time.Timer
	armed   bool
	pending map[string]Event
}

// NewDebouncer creates a Debouncer. A non-positive delay means DefaultDelay.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	t := time.NewTimer(delay)
	t.Stop()
	return &Debouncer{delay: delay, timer: t, pending: make(map[string]Event)}
}

// Add records an event and restarts the quiet period.
func (d *Debouncer) Add(e Event) {
	d.pending[e.Path] = e
	d.timer.Reset(d.delay)
	d.armed = true
}

// Ready fires once the quiet period after the last Add has elapsed.
// It returns nil, which blocks forever in a select, while nothing is pending.
func (d *Debouncer) Ready() <-chan time.Time {
	if !d.armed {
		return nil
	}
	return d.timer.C
}

// Drain returns the pending events sorted by path and clears them.
func (d *Debouncer) Drain() []Event {
	d.armed = false
	events := make([]Event, 0, len(d.pending))
	for _, e := range d.pending {
		events = append(events, e)
	}
	clear(d.pending)
	sort.Slice(events, func(i, j int) bool { return events[i].Path < events[j].Path })
	return events
}

// Pending returns the number of paths waiting for delivery.
func (d *Debouncer) Pending() int {
	return len(d.pending)
}

// Stop halts the timer. Pending events are kept.
func (d *Debouncer) Stop() {
	d.timer.Stop()
	d.armed = false
}

// NotHidden rejects paths whose base name starts with a dot.
func NotHidden(path string) bool {
	return !strings.HasPrefix(filepath.Base(path), ".")
}

// InDir accepts only direct children of dir.
func InDir(dir string) Filter {
	clean := filepath.Clean(dir)
	return func(path string) bool {
		return filepath.Dir(filepath.Clean(path)) == clean
	}
}

// Exactly accepts a single path.
func Exactly(target string) Filter {
	clean := filepath.Clean(target)
	return func(path string) bool {
		return filepath.Clean(path) == clean
	}
}
