package jot

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/jot/internal/platform"
	"github.com/aretw0/jot/pkg/core"
	"github.com/aretw0/jot/pkg/engine"
)

// --- Types ---

// Note is the atomic unit of user content.
type Note = core.Note

// Patch describes a partial note mutation.
type Patch = core.Patch

// Route is the fragment encoding of the current selection.
type Route = core.Route

// Theme is the persisted UI color preference.
type Theme = core.Theme

// Engine is the running state synchronization engine.
type Engine = engine.Engine

// --- Configuration ---

// Option defines a functional option for configuring the engine.
type Option = platform.Option

// WithLogger sets the logger for the engine and its adapters.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithBackend injects a custom persistence backend.
func WithBackend(backend core.Backend) Option {
	return platform.WithBackend(backend)
}

// WithRouter injects a custom router.
func WithRouter(router core.Router) Option {
	return platform.WithRouter(router)
}

// WithIDGenerator overrides the note ID generator.
func WithIDGenerator(ids core.IDGenerator) Option {
	return platform.WithIDGenerator(ids)
}

// WithClock overrides the timestamp source.
func WithClock(clock core.Clock) Option {
	return platform.WithClock(clock)
}

// WithScheduler overrides the debounce timer source.
func WithScheduler(s core.Scheduler) Option {
	return platform.WithScheduler(s)
}

// WithDebounce sets the persistence settle window.
func WithDebounce(d time.Duration) Option {
	return platform.WithDebounce(d)
}

// WithSelectFirst selects the newest persisted note at startup when no deep
// link overrides it.
func WithSelectFirst(enabled bool) Option {
	return platform.WithSelectFirst(enabled)
}

// WithSystemDir sets the hidden state directory name.
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// --- Factory ---

// Open assembles and starts an engine rooted at the given path. The engine
// owns its asynchronous resources until Close; the context bounds them.
func Open(ctx context.Context, path string, opts ...Option) (*Engine, error) {
	return platform.Open(ctx, path, opts...)
}
