package core

import "time"

// Note is the central entity of the domain: a short piece of user text
// identified by an opaque ID.
type Note struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	UpdatedAt int64  `json:"updatedAt"` // Unix milliseconds
}

// Patch describes a partial note mutation. Nil fields are left untouched.
type Patch struct {
	Title   *string
	Content *string
}

// Clock returns the current time in Unix milliseconds.
// Injected so tests can control timestamps deterministically.
type Clock func() int64

// WallClock is the default Clock.
func WallClock() int64 {
	return time.Now().UnixMilli()
}
