package persist

import (
	"sort"
	"sync"
	"time"

	"github.com/aretw0/jot/pkg/core"
)

// ManualScheduler is a deterministic Scheduler driven by an explicit virtual
// clock. Tests advance it instead of sleeping through real debounce windows.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	nextID int
	timers map[int]*manualTimer
}

type manualTimer struct {
	due    time.Duration
	action func()
}

// NewManualScheduler creates a scheduler with the virtual clock at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{timers: make(map[int]*manualTimer)}
}

// Schedule implements core.Scheduler.
func (m *ManualScheduler) Schedule(delay time.Duration, action func()) core.CancelFunc {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.timers[id] = &manualTimer{due: m.now + delay, action: action}
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.timers, id)
	}
}

// Advance moves the virtual clock forward, running every timer that comes due
// in order. Actions run without the scheduler lock held, so they may schedule
// or cancel.
func (m *ManualScheduler) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	now := m.now
	m.mu.Unlock()

	for {
		action := m.popDue(now)
		if action == nil {
			return
		}
		action()
	}
}

// Armed reports the number of timers waiting to fire.
func (m *ManualScheduler) Armed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

func (m *ManualScheduler) popDue(now time.Duration) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]int, 0, len(m.timers))
	for id := range m.timers {
		if m.timers[id].due <= now {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	sort.Slice(ids, func(i, j int) bool {
		ti, tj := m.timers[ids[i]], m.timers[ids[j]]
		if ti.due != tj.due {
			return ti.due < tj.due
		}
		return ids[i] < ids[j]
	})

	id := ids[0]
	action := m.timers[id].action
	delete(m.timers, id)
	return action
}
