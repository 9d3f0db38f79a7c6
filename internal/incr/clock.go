package incr

import (
	"sync"
	"time"
)

// Clock is the scheduler's notion of "now". It only moves when the scheduler
// re-samples the wall clock, so everything evaluated between two samples sees
// the same time.
type Clock struct {
	mu  sync.RWMutex
	now time.Time
	src func() time.Time
}

// NewClock samples src once. A nil src means time.Now.
func NewClock(src func() time.Time) *Clock {
	if src == nil {
		src = time.Now
	}
	return &Clock{now: src(), src: src}
}

func (c *Clock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Sample reads the underlying source and makes it the current time.
func (c *Clock) Sample() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.src()
	return c.now
}

// Set moves the clock to t directly. Used by tests and replays.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}
