package engine

import (
	"github.com/aretw0/jot/pkg/core"
	"github.com/aretw0/jot/pkg/store"
)

// Add creates a new empty note, selects it and returns its ID.
func (e *Engine) Add() string {
	return e.store.Add()
}

// Update merges a patch into a note. Unknown IDs are ignored.
func (e *Engine) Update(id string, patch core.Patch) {
	e.store.Update(id, patch)
}

// Delete removes a note. Unknown IDs are ignored.
func (e *Engine) Delete(id string) {
	e.store.Delete(id)
}

// Select sets the current selection.
func (e *Engine) Select(id string) {
	e.store.Select(id)
}

// Deselect clears the current selection.
func (e *Engine) Deselect() {
	e.store.Deselect()
}

// SetQuery replaces the active search query.
func (e *Engine) SetQuery(q string) {
	e.store.SetQuery(q)
}

// Notes returns the full collection, newest first.
func (e *Engine) Notes() []core.Note {
	return e.store.Notes()
}

// Filtered returns the notes matching the active query.
func (e *Engine) Filtered() []core.Note {
	return e.store.Filtered()
}

// Selected resolves the current selection, nil when it names nothing.
func (e *Engine) Selected() *core.Note {
	return e.store.Selected()
}

// Get returns a note by ID.
func (e *Engine) Get(id string) (core.Note, bool) {
	return e.store.Get(id)
}

// Theme reads the persisted theme preference.
func (e *Engine) Theme() core.Theme {
	return e.backend.LoadTheme()
}

// SetTheme persists the theme preference. Only the enumerated values are
// accepted.
func (e *Engine) SetTheme(theme core.Theme) error {
	return e.backend.SaveTheme(theme)
}

// Back navigates one history entry backwards when the router keeps history.
func (e *Engine) Back() error {
	nav, ok := e.router.(core.Navigator)
	if !ok {
		return core.ErrNoHistory
	}
	return nav.Back()
}

// Forward navigates one history entry forwards when the router keeps history.
func (e *Engine) Forward() error {
	nav, ok := e.router.(core.Navigator)
	if !ok {
		return core.ErrNoHistory
	}
	return nav.Forward()
}

// Route returns the route the sync machine last wrote or observed.
func (e *Engine) Route() core.Route {
	return e.sync.Current()
}

// Store exposes the underlying note store, for callers that want to observe
// changes directly.
func (e *Engine) Store() *store.Store {
	return e.store
}
