package testutil

import (
	"sync"
	"time"

	"github.com/resello/resello/internal/clock"
)

// TestClock is a Clock pinned to an explicit instant so renewal arithmetic
// is deterministic in tests.
type TestClock struct {
	mu  sync.RWMutex
	now time.Time
}

var _ clock.Clock = (*TestClock)(nil)

func NewTestClock(now time.Time) *TestClock {
	return &TestClock{now: now.UTC()}
}

func (c *TestClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// SetNow moves the clock to an absolute instant.
func (c *TestClock) SetNow(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now.UTC()
}

// Advance moves the clock forward by d.
func (c *TestClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
