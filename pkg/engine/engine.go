// Package engine wires the note store, the debounced persistence writer and
// the route synchronization machine into one owned scope with an explicit
// lifecycle.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/jot/pkg/core"
	"github.com/aretw0/jot/pkg/persist"
	"github.com/aretw0/jot/pkg/routesync"
	"github.com/aretw0/jot/pkg/store"
)

// Config holds the collaborators and tuning for an Engine.
type Config struct {
	Backend core.Backend
	Router  core.Router

	IDs       core.IDGenerator // defaults to uuid tokens
	Clock     core.Clock       // defaults to the wall clock
	Scheduler core.Scheduler   // defaults to the wall clock scheduler
	Debounce  time.Duration    // defaults to persist.DefaultDebounce

	// SelectFirst selects the newest persisted note at startup when nothing
	// else is selected, so a returning user lands on their latest note.
	SelectFirst bool

	Logger *slog.Logger
}

// Engine is the running state synchronization engine. UI surfaces drive the
// store through it; persistence and routing follow by observing the store.
type Engine struct {
	store  *store.Store
	writer *persist.Writer
	sync   *routesync.Sync

	backend core.Backend
	router  core.Router
	logger  *slog.Logger

	mu          sync.Mutex
	started     bool
	closed      bool
	unsubStore  func()
	unsubRouter func()

	selectFirst bool
}

// New assembles an Engine. Nothing runs until Start.
func New(cfg Config) (*Engine, error) {
	if cfg.Backend == nil {
		return nil, fmt.Errorf("engine requires a backend")
	}
	if cfg.Router == nil {
		return nil, fmt.Errorf("engine requires a router")
	}
	if cfg.IDs == nil {
		cfg.IDs = core.IDGeneratorFunc(uuid.NewString)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	st := store.New(cfg.IDs, cfg.Clock)
	e := &Engine{
		store:       st,
		backend:     cfg.Backend,
		router:      cfg.Router,
		logger:      cfg.Logger,
		selectFirst: cfg.SelectFirst,
	}
	e.writer = persist.NewWriter(persist.Config{
		Backend:   cfg.Backend,
		Source:    st.Notes,
		Scheduler: cfg.Scheduler,
		Delay:     cfg.Debounce,
		Logger:    cfg.Logger,
	})
	e.sync = routesync.New(cfg.Router, st, cfg.Logger)
	return e, nil
}

// Start loads persisted state, runs the one-time route startup transition and
// attaches the observers. The ordering is load-bearing: the route is read
// before anything may push, so a deep link present at startup is never
// clobbered.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return fmt.Errorf("engine already started")
	}
	if e.closed {
		return fmt.Errorf("engine is closed")
	}

	// 1. Seed the store from the backend. LoadNotes never fails; corrupt
	// state degrades to an empty collection.
	notes := e.backend.LoadNotes()
	e.store.Load(notes)

	if e.selectFirst && len(notes) > 0 {
		e.store.Select(notes[0].ID)
	}

	// 2. Initial route reconciliation, before any observer is attached.
	if err := e.sync.Startup(); err != nil {
		return fmt.Errorf("route startup failed: %w", err)
	}

	// 3. Store observers: persistence and route normalization follow the
	// collection; pushes follow the selection.
	e.unsubStore = e.store.Subscribe(e.onStoreEvent)

	// 4. Router events apply synchronously: a Pull always observes the
	// collection as of the moment the event is processed, and a navigation
	// made through this engine is reflected before the call returns.
	unsub, err := e.router.Subscribe(e.sync.Pull)
	if err != nil {
		e.unsubStore()
		return fmt.Errorf("failed to subscribe to router: %w", err)
	}
	e.unsubRouter = unsub

	e.started = true
	return nil
}

func (e *Engine) onStoreEvent(ev core.Event) {
	switch {
	case ev.CollectionChanged():
		e.writer.NoteChanged()
		if err := e.sync.Reconcile(); err != nil {
			e.logger.Warn("route reconcile failed", "error", err)
		}
	case ev.Type == core.EventSelect:
		if err := e.sync.Push(ev.ID); err != nil {
			e.logger.Warn("route push failed", "error", err)
		}
	}
}

// Close releases the engine's asynchronous resources: the router
// subscription, the store subscription and any pending debounce timer. A
// write still inside the debounce window is cancelled, not flushed; callers
// needing durability call Flush first.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true

	if e.unsubRouter != nil {
		e.unsubRouter()
	}
	if e.unsubStore != nil {
		e.unsubStore()
	}
	e.writer.Close()
	return nil
}

// Flush forces a pending persistence write to run now.
func (e *Engine) Flush() {
	e.writer.Flush()
}
