package persist

import (
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/jot/pkg/core"
)

// Config holds the wiring for a Writer.
type Config struct {
	Backend core.Backend
	// Source snapshots the collection at write time, so a debounced write
	// always persists the most recent state, never a stale capture.
	Source    func() []core.Note
	Scheduler core.Scheduler
	Delay     time.Duration
	Logger    *slog.Logger
}

// Writer debounces note-collection changes into backend writes. Every
// observed change re-arms a trailing-edge timer; only the latest state is
// written, once per settling period. There is no durability guarantee for
// changes still inside the window when the process dies hard.
type Writer struct {
	mu      sync.Mutex
	backend core.Backend
	source  func() []core.Note
	sched   core.Scheduler
	delay   time.Duration
	logger  *slog.Logger

	gen     uint64 // invalidates superseded timers
	cancel  core.CancelFunc
	pending bool
	closed  bool
}

// NewWriter creates a Writer. Zero Delay defaults to DefaultDebounce; a nil
// Scheduler defaults to the wall clock; a nil Logger defaults to
// slog.Default().
func NewWriter(cfg Config) *Writer {
	if cfg.Delay <= 0 {
		cfg.Delay = DefaultDebounce
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = NewScheduler()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Writer{
		backend: cfg.Backend,
		source:  cfg.Source,
		sched:   cfg.Scheduler,
		delay:   cfg.Delay,
		logger:  cfg.Logger,
	}
}

// NoteChanged (re)arms the debounce timer. A timer superseded before firing
// never writes.
func (w *Writer) NoteChanged() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.cancel != nil {
		w.cancel()
	}
	w.gen++
	gen := w.gen
	w.pending = true
	w.cancel = w.sched.Schedule(w.delay, func() { w.fire(gen) })
}

func (w *Writer) fire(gen uint64) {
	w.mu.Lock()
	if w.closed || gen != w.gen {
		w.mu.Unlock()
		return
	}
	w.cancel = nil
	w.pending = false
	w.mu.Unlock()

	w.save()
}

// Flush runs a pending write immediately and synchronously. It is a no-op
// when nothing is pending. Short-lived owners (a CLI invocation) call this
// before Close so a mutation inside the debounce window is not lost.
func (w *Writer) Flush() {
	w.mu.Lock()
	if w.closed || !w.pending {
		w.mu.Unlock()
		return
	}
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.gen++
	w.pending = false
	w.mu.Unlock()

	w.save()
}

// Close cancels any pending timer. No write runs after Close returns; the
// debounce timer is a scoped acquisition released with its owner.
func (w *Writer) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	w.pending = false
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
}

// Pending reports whether a write is armed but not yet executed.
func (w *Writer) Pending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending
}

func (w *Writer) save() {
	notes := w.source()
	if err := w.backend.SaveNotes(notes); err != nil {
		// Privacy contract: the count is loggable, note contents are not.
		w.logger.Warn("failed to persist notes", "count", len(notes), "error", err)
	}
}
