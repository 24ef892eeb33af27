package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/jot/pkg/core"
)

// options holds the internal configuration for the jot engine.
type options struct {
	logger      *slog.Logger
	backend     core.Backend
	router      core.Router
	ids         core.IDGenerator
	clock       core.Clock
	scheduler   core.Scheduler
	debounce    time.Duration
	selectFirst bool
	systemDir   string
}

// Option defines a functional option for configuring the engine.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		systemDir: ".jot",
	}
}

// WithLogger sets the logger for the engine and its adapters.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithBackend injects a custom persistence backend, skipping the default
// file-backed one.
func WithBackend(backend core.Backend) Option {
	return func(o *options) {
		o.backend = backend
	}
}

// WithRouter injects a custom router, skipping the default session-file one.
func WithRouter(router core.Router) Option {
	return func(o *options) {
		o.router = router
	}
}

// WithIDGenerator overrides the note ID generator.
func WithIDGenerator(ids core.IDGenerator) Option {
	return func(o *options) {
		o.ids = ids
	}
}

// WithClock overrides the timestamp source. Mainly useful for tests.
func WithClock(clock core.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithScheduler overrides the debounce timer source. Mainly useful for tests
// with a virtual clock.
func WithScheduler(s core.Scheduler) Option {
	return func(o *options) {
		o.scheduler = s
	}
}

// WithDebounce sets the persistence settle window. Zero keeps the default.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.debounce = d
	}
}

// WithSelectFirst selects the newest persisted note at startup when no deep
// link overrides it.
func WithSelectFirst(enabled bool) Option {
	return func(o *options) {
		o.selectFirst = enabled
	}
}

// WithSystemDir sets the hidden state directory name (e.g. ".jot").
func WithSystemDir(name string) Option {
	return func(o *options) {
		o.systemDir = name
	}
}
