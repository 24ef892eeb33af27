// Package routesync reconciles the store selection with the router, in both
// directions, without polluting navigation history.
package routesync

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/jot/pkg/core"
)

// Selection is the slice of the note store the state machine needs.
type Selection interface {
	Select(id string)
	SelectedID() string
	Get(id string) (core.Note, bool)
}

type state int

const (
	// stateUninitialized blocks Push, Pull and Reconcile until Startup has
	// read the route; pushing earlier could clobber a deep link the machine
	// has not seen yet.
	stateUninitialized state = iota
	stateSynced
)

// Sync is the selection<->route state machine. It starts Uninitialized and
// becomes Synced after Startup; every transition is total and explicit,
// replacing the implicit "has initial sync happened" latch with a state
// value that can be asserted on.
type Sync struct {
	mu      sync.Mutex
	st      state
	current core.Route // last route written to or observed from the router

	router core.Router
	store  Selection
	logger *slog.Logger
}

// New creates a Sync in the Uninitialized state. A nil logger defaults to
// slog.Default().
func New(router core.Router, store Selection, logger *slog.Logger) *Sync {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sync{
		router: router,
		store:  store,
		logger: logger,
	}
}

// Startup runs the one-time initial reconciliation and moves the machine to
// Synced. All three branches write with replace semantics: normalization must
// not create history entries.
//
//  1. Route names an existing note: adopt it as the selection and write the
//     normalized encoding back.
//  2. No usable route but the store already has a selection (e.g. a caller
//     defaulted to the first note): publish that selection.
//  3. Otherwise: clear the route.
func (s *Sync) Startup() error {
	s.mu.Lock()
	if s.st != stateUninitialized {
		s.mu.Unlock()
		return fmt.Errorf("startup already ran")
	}

	route, err := s.router.Read()
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to read route: %w", err)
	}

	var target core.Route
	adopt := false
	switch {
	case !route.IsZero() && s.contains(route.ID):
		adopt = true
		target = route
	case s.store.SelectedID() != "":
		target = core.Route{ID: s.store.SelectedID()}
	default:
		target = core.Route{}
	}
	s.current = target
	s.st = stateSynced
	s.mu.Unlock()

	if adopt {
		// The echo Push is a no-op: current already matches the target.
		s.store.Select(target.ID)
	}
	if err := s.router.WriteReplace(target); err != nil {
		return fmt.Errorf("failed to write route: %w", err)
	}
	return nil
}

// Push publishes a selection change to the router with push semantics,
// creating a navigation-history entry. Uninitialized machines never push.
// Pushing the route the router already shows is skipped, mirroring fragment
// assignment in a browser: writing an identical fragment adds no history
// entry, which keeps Pull-induced selection echoes from duplicating entries.
func (s *Sync) Push(selectedID string) error {
	s.mu.Lock()
	if s.st != stateSynced {
		s.mu.Unlock()
		return nil
	}
	target := core.Route{ID: selectedID}
	if target == s.current {
		s.mu.Unlock()
		return nil
	}
	s.current = target
	s.mu.Unlock()

	if err := s.router.WritePush(target); err != nil {
		return fmt.Errorf("failed to push route: %w", err)
	}
	return nil
}

// Pull applies a router-originated change (back/forward navigation, manual
// fragment edits) to the selection. An empty route is a deliberate deselect
// navigation and is never auto-corrected into a selection; a route naming an
// unknown note changes nothing and leaves normalization to Reconcile.
func (s *Sync) Pull(route core.Route) {
	s.mu.Lock()
	if s.st != stateSynced {
		s.mu.Unlock()
		return
	}
	s.current = route
	apply := !route.IsZero() && s.contains(route.ID)
	s.mu.Unlock()

	if apply {
		// Select re-enters the event pipeline; the echo Push is suppressed
		// because current already matches.
		s.store.Select(route.ID)
	}
}

// Reconcile normalizes the route after a collection mutation: when the route
// names a note that no longer exists, it is rewritten from the current
// selection with replace semantics so the stale deep link does not outlive
// its note.
func (s *Sync) Reconcile() error {
	s.mu.Lock()
	if s.st != stateSynced {
		s.mu.Unlock()
		return nil
	}
	if s.current.IsZero() || s.contains(s.current.ID) {
		s.mu.Unlock()
		return nil
	}
	target := core.Route{ID: s.store.SelectedID()}
	s.current = target
	s.mu.Unlock()

	if err := s.router.WriteReplace(target); err != nil {
		return fmt.Errorf("failed to rewrite route: %w", err)
	}
	return nil
}

// Initialized reports whether Startup has completed.
func (s *Sync) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st == stateSynced
}

// Current returns the route the machine last wrote or observed.
func (s *Sync) Current() core.Route {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Sync) contains(id string) bool {
	_, ok := s.store.Get(id)
	return ok
}
