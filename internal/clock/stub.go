package clock

import (
	"sync"
	"time"
)

// Stub returns a fixed time until advanced. Safe for concurrent use.
type Stub struct {
	mu  sync.Mutex
	now time.Time
}

// NewStub creates a Stub set to the given time.
func NewStub(t time.Time) *Stub {
	return &Stub{now: t}
}

// Fixed returns a Stub set to 2024-01-15 10:30:00 UTC.
func Fixed() *Stub {
	return NewStub(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC))
}

func (c *Stub) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Stub) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
