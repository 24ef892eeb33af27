// Package core defines the domain types and contracts of the jot engine.
package core

// EventType represents the kind of change observed in the store.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
	EventSelect EventType = "SELECT"
	EventQuery  EventType = "QUERY"
)

// Event represents a change in the note store. For collection events the ID
// names the affected note; for SELECT it carries the new selection (empty
// when the selection was cleared).
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix milliseconds
}

// String implements fmt.Stringer (and the lifecycle event contract).
func (e Event) String() string {
	return string(e.Type) + " " + e.ID
}

// CollectionChanged reports whether the event mutated the note collection,
// as opposed to selection or query state.
func (e Event) CollectionChanged() bool {
	switch e.Type {
	case EventCreate, EventModify, EventDelete:
		return true
	}
	return false
}
