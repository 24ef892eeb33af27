package core

import "time"

// Backend defines the contract for the durable key-value storage holding the
// note collection and the theme preference.
//
// LoadNotes never fails past its boundary: missing, unreadable or malformed
// data yields an empty collection, and each stored record is sanitized
// field-by-field into a well-typed Note. SaveNotes is best-effort; callers
// log failures generically (note titles and content must never reach logs).
type Backend interface {
	LoadNotes() []Note
	SaveNotes(notes []Note) error

	LoadTheme() Theme
	SaveTheme(theme Theme) error
}

// Router abstracts the browsing-context primitives the sync protocol is built
// on: read the current route, rewrite it with or without a new history entry,
// and observe externally-driven route changes (back/forward navigation,
// manual fragment edits).
type Router interface {
	// Read returns the current route.
	Read() (Route, error)

	// WriteReplace rewrites the current route without creating a history entry.
	WriteReplace(route Route) error

	// WritePush writes the route, creating a new history entry.
	WritePush(route Route) error

	// Subscribe registers a change listener and returns its unsubscribe
	// function. The listener is not invoked for writes made through this
	// Router instance, only for external changes.
	Subscribe(onChange func(Route)) (func(), error)
}

// Navigator is implemented by routers that keep a navigation history.
type Navigator interface {
	Back() error
	Forward() error
}

// CancelFunc cancels a scheduled action. Cancelling after the action has run
// is a no-op.
type CancelFunc func()

// Scheduler defers an action by a delay. The default implementation uses the
// wall clock; tests substitute a manual clock for deterministic debounce
// behavior.
type Scheduler interface {
	Schedule(delay time.Duration, action func()) CancelFunc
}

// IDGenerator produces opaque, collision-resistant note identifiers. The
// engine treats tokens as uninterpreted strings and never assumes structure.
type IDGenerator interface {
	NewID() string
}

// IDGeneratorFunc adapts a function to the IDGenerator interface.
type IDGeneratorFunc func() string

func (f IDGeneratorFunc) NewID() string { return f() }
