package testutil

import (
	"sync"
	"time"
)

// StepClock hands out strictly increasing timestamps, one step apart.
// Stores that stamp rows with Now get a deterministic order.
type StepClock struct {
	mu   sync.Mutex
	next time.Time
	step time.Duration
}

// NewStepClock starts at start; each Now call advances by step.
func NewStepClock(start time.Time, step time.Duration) *StepClock {
	return &StepClock{next: start, step: step}
}

func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.next
	c.next = c.next.Add(c.step)
	return now
}
