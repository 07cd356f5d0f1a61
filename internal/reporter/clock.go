package reporter

import (
	"fmt"
	"time"
)

// Clock measures time relative to the start of a session
type Clock struct {
	now   func() time.Time
	start time.Time
}

// NewClock starts a clock at the current time
func NewClock() *Clock {
	return NewClockAt(time.Now, time.Now())
}

// NewClockAt creates a clock with an explicit time source and start
func NewClockAt(now func() time.Time, start time.Time) *Clock {
	return &Clock{now: now, start: start}
}

// Elapsed returns the time since the clock started
func (c *Clock) Elapsed() time.Duration {
	return c.now().Sub(c.start)
}

// Start returns when the clock started
func (c *Clock) Start() time.Time {
	return c.start
}

// FormatElapsed renders d as seconds with two decimals, e.g. "12.34s"
func FormatElapsed(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}
