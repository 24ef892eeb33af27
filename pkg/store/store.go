// Package store implements the in-memory note store: collection, selection
// and search query, with synchronous change notifications.
package store

import (
	"strings"
	"sync"

	"github.com/aretw0/jot/pkg/core"
)

// Store owns the note collection, the current selection and the active search
// query. All operations are synchronous and mutate only the store's own
// state; persistence and routing react to the emitted events.
//
// Mutations are serialized by an internal mutex. Events are delivered after
// the lock is released, in the mutating goroutine, so a subscriber may call
// back into the store.
type Store struct {
	mu       sync.Mutex
	notes    []core.Note // newest-first
	selected string      // note ID, "" when nothing is selected
	query    string

	clock core.Clock
	ids   core.IDGenerator

	nextSub int
	subs    map[int]func(core.Event)
}

// New creates an empty store. The generator must be non-nil; a nil clock
// defaults to the wall clock.
func New(ids core.IDGenerator, clock core.Clock) *Store {
	if clock == nil {
		clock = core.WallClock
	}
	return &Store{
		clock: clock,
		ids:   ids,
		subs:  make(map[int]func(core.Event)),
	}
}

// Load seeds the collection from persisted state. It does not emit events and
// is intended to run once, before any subscribers are attached.
func (s *Store) Load(notes []core.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = append([]core.Note(nil), notes...)
}

// Subscribe registers a change listener and returns its unsubscribe function.
func (s *Store) Subscribe(fn func(core.Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Add creates a new empty note, prepends it to the collection, selects it and
// returns its ID.
func (s *Store) Add() string {
	s.mu.Lock()
	now := s.clock()
	note := core.Note{ID: s.ids.NewID(), UpdatedAt: now}
	s.notes = append([]core.Note{note}, s.notes...)
	s.selected = note.ID
	s.mu.Unlock()

	s.emit(core.Event{Type: core.EventCreate, ID: note.ID, Timestamp: now})
	s.emit(core.Event{Type: core.EventSelect, ID: note.ID, Timestamp: now})
	return note.ID
}

// Update merges the patch into the note with the given ID. Unknown IDs are
// ignored. UpdatedAt is refreshed unconditionally, even when the patch leaves
// every field identical: a write always counts as an update. Timestamps never
// decrease, even under a clock that jumps backwards.
func (s *Store) Update(id string, patch core.Patch) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	note := &s.notes[idx]
	if patch.Title != nil {
		note.Title = *patch.Title
	}
	if patch.Content != nil {
		note.Content = *patch.Content
	}
	now := s.clock()
	if now < note.UpdatedAt {
		now = note.UpdatedAt
	}
	note.UpdatedAt = now
	s.mu.Unlock()

	s.emit(core.Event{Type: core.EventModify, ID: id, Timestamp: now})
}

// Delete removes the note with the given ID, if present. Deleting the
// selected note clears the selection.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.notes = append(s.notes[:idx], s.notes[idx+1:]...)
	if s.selected == id {
		s.selected = ""
	}
	now := s.clock()
	s.mu.Unlock()

	s.emit(core.Event{Type: core.EventDelete, ID: id, Timestamp: now})
}

// Select sets the selection unconditionally, without checking membership.
// An ID absent from the collection simply resolves to no note until it
// appears; see Selected.
func (s *Store) Select(id string) {
	s.mu.Lock()
	s.selected = id
	now := s.clock()
	s.mu.Unlock()

	s.emit(core.Event{Type: core.EventSelect, ID: id, Timestamp: now})
}

// Deselect clears the selection.
func (s *Store) Deselect() {
	s.Select("")
}

// SetQuery replaces the active search query.
func (s *Store) SetQuery(q string) {
	s.mu.Lock()
	s.query = q
	now := s.clock()
	s.mu.Unlock()

	s.emit(core.Event{Type: core.EventQuery, Timestamp: now})
}

// Notes returns a snapshot of the full collection, newest first.
func (s *Store) Notes() []core.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Note(nil), s.notes...)
}

// Filtered returns the notes matching the active query: a case-insensitive
// substring match against title or content. An empty or whitespace-only
// query matches everything.
func (s *Store) Filtered() []core.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(strings.TrimSpace(s.query))
	if q == "" {
		return append([]core.Note(nil), s.notes...)
	}
	var out []core.Note
	for _, n := range s.notes {
		if strings.Contains(strings.ToLower(n.Title), q) ||
			strings.Contains(strings.ToLower(n.Content), q) {
			out = append(out, n)
		}
	}
	return out
}

// Selected resolves the current selection against the collection. It returns
// nil when nothing is selected or when the selected ID no longer names a
// note; the selection is a lookup key, never a dangling reference.
func (s *Store) Selected() *core.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == "" {
		return nil
	}
	idx := s.indexOf(s.selected)
	if idx < 0 {
		return nil
	}
	n := s.notes[idx]
	return &n
}

// SelectedID returns the raw selection, "" when nothing is selected.
func (s *Store) SelectedID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Query returns the active search query.
func (s *Store) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Get returns the note with the given ID, if present.
func (s *Store) Get(id string) (core.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return core.Note{}, false
	}
	return s.notes[idx], true
}

// Len returns the number of notes.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notes)
}

// indexOf must be called with the lock held.
func (s *Store) indexOf(id string) int {
	for i := range s.notes {
		if s.notes[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) emit(e core.Event) {
	s.mu.Lock()
	fns := make([]func(core.Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}
