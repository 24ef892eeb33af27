package core

import "errors"

// Common errors.
var (
	// ErrNoHistory is returned by Navigator implementations when there is no
	// entry to move to in the requested direction.
	ErrNoHistory = errors.New("no history entry in that direction")
)
