package store

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability. Only counts and the
// raw selection key are reported; note contents stay private.
type StoreState struct {
	Notes       int    `json:"notes"`
	SelectedID  string `json:"selected_id,omitempty"`
	QueryActive bool   `json:"query_active"`
	Subscribers int    `json:"subscribers"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return StoreState{
		Notes:       len(s.notes),
		SelectedID:  s.selected,
		QueryActive: len(s.query) > 0,
		Subscribers: len(s.subs),
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
