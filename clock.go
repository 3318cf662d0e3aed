package koudou

import "time"

// DefaultMaxStep bounds a single Clock step.
const DefaultMaxStep = 250 * time.Millisecond

// Clock produces frame time deltas for System.Update.
type Clock struct {
	now     func() time.Time
	last    time.Time
	started bool
	maxStep time.Duration
}

// NewClock returns a clock whose steps are clamped to maxStep. A non-positive
// maxStep selects DefaultMaxStep. A nil now uses time.Now.
func NewClock(maxStep time.Duration, now func() time.Time) *Clock {
	if maxStep <= 0 {
		maxStep = DefaultMaxStep
	}
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now, maxStep: maxStep}
}

// Tick returns the time elapsed since the previous Tick. The first Tick after
// creation or Reset returns 0.
func (c *Clock) Tick() time.Duration {
	t := c.now()
	if !c.started {
		c.started = true
		c.last = t
		return 0
	}
	dt := t.Sub(c.last)
	c.last = t
	if dt < 0 {
		return 0
	}
	return min(dt, c.maxStep)
}

// Reset makes the next Tick start a new measurement, for example after the
// loop has been paused.
func (c *Clock) Reset() {
	c.started = false
}
