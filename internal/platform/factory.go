package platform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/jot/pkg/adapters/localstore"
	"github.com/aretw0/jot/pkg/adapters/session"
	"github.com/aretw0/jot/pkg/engine"
)

// Open assembles and starts an engine rooted at the given path. The default
// wiring stores notes, theme and session under <path>/<systemDir>; both
// adapters can be swapped via options.
func Open(ctx context.Context, path string, opts ...Option) (*engine.Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	stateDir := filepath.Join(path, o.systemDir)

	backend := o.backend
	if backend == nil {
		fileBackend := localstore.New(localstore.Config{
			Path:   stateDir,
			Logger: o.logger,
		})
		if err := fileBackend.Initialize(); err != nil {
			return nil, fmt.Errorf("failed to initialize backend: %w", err)
		}
		backend = fileBackend
	}

	router := o.router
	if router == nil {
		if err := os.MkdirAll(stateDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
		router = session.New(session.Config{
			Path:   stateDir,
			Logger: o.logger,
		})
	}

	eng, err := engine.New(engine.Config{
		Backend:     backend,
		Router:      router,
		IDs:         o.ids,
		Clock:       o.clock,
		Scheduler:   o.scheduler,
		Debounce:    o.debounce,
		SelectFirst: o.selectFirst,
		Logger:      o.logger,
	})
	if err != nil {
		return nil, err
	}

	if err := eng.Start(ctx); err != nil {
		return nil, err
	}
	return eng, nil
}
