package backend

import (
	"sync"
	"time"
)

// Throttle ensures a minimum interval between successive operations.
type Throttle struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

// NewThrottle returns a throttle admitting one operation per interval. A
// non-positive interval admits everything.
func NewThrottle(interval time.Duration) *Throttle {
	if interval <= 0 {
		return &Throttle{}
	}
	return &Throttle{interval: interval}
}

// Allow reports whether an operation may run now, and if so starts a new
// interval. It never blocks.
func (t *Throttle) Allow() bool {
	if t == nil || t.interval <= 0 {
		return true
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now()
	if now.Before(t.next) {
		return false
	}
	t.next = now.Add(t.interval)
	return true
}
