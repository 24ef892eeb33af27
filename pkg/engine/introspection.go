package engine

import (
	"github.com/aretw0/introspection"
)

// EngineState exposes internal state for observability.
type EngineState struct {
	Started      bool   `json:"started"`
	Closed       bool   `json:"closed"`
	Notes        int    `json:"notes"`
	RouteSynced  bool   `json:"route_synced"`
	CurrentRoute string `json:"current_route"`
	WritePending bool   `json:"write_pending"`
}

// State implements introspection.Introspectable.
func (e *Engine) State() any {
	e.mu.Lock()
	started, closed := e.started, e.closed
	e.mu.Unlock()

	return EngineState{
		Started:      started,
		Closed:       closed,
		Notes:        e.store.Len(),
		RouteSynced:  e.sync.Initialized(),
		CurrentRoute: e.sync.Current().Fragment(),
		WritePending: e.writer.Pending(),
	}
}

// ComponentType implements introspection.Component.
func (e *Engine) ComponentType() string {
	return "engine"
}

var _ introspection.Introspectable = (*Engine)(nil)
var _ introspection.Component = (*Engine)(nil)
