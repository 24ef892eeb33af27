// Package persist coalesces rapid store mutations into debounced backend
// writes.
package persist

import (
	"time"

	"github.com/aretw0/jot/pkg/core"
)

// DefaultDebounce is the trailing-edge settle window between the last
// observed mutation and the backend write.
const DefaultDebounce = 300 * time.Millisecond

type wallScheduler struct{}

// NewScheduler returns the wall-clock Scheduler used outside of tests.
func NewScheduler() core.Scheduler {
	return wallScheduler{}
}

func (wallScheduler) Schedule(delay time.Duration, action func()) core.CancelFunc {
	t := time.AfterFunc(delay, action)
	return func() { t.Stop() }
}
