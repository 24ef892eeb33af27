// Package lifecycle bridges store change events to the generic lifecycle
// event pipeline, for applications that supervise jot alongside other
// components.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/jot/pkg/core"
	"github.com/aretw0/jot/pkg/store"
)

type storeSource struct {
	store *store.Store
	out   chan lifecycle.Event
	unsub func()
}

// NewSource creates a lifecycle.Source that emits the store's change events.
// It subscribes on Start and unsubscribes when the context ends.
func NewSource(s *store.Store) lifecycle.Source {
	return &storeSource{
		store: s,
		out:   make(chan lifecycle.Event, 16),
	}
}

func (s *storeSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *storeSource) Start(ctx context.Context) error {
	events := make(chan core.Event, 16)
	s.unsub = s.store.Subscribe(func(e core.Event) {
		select {
		case events <- e:
		case <-ctx.Done():
		}
	})

	// Uses lifecycle.Go so the bridge itself is tracked and torn down with
	// its owner.
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		defer s.unsub()
		for {
			select {
			case <-ctx.Done():
				return nil
			case e := <-events:
				// core.Event implements lifecycle.Event (has String())
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
