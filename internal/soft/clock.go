package soft

import "galaxy/internal/galaxy"

// Clock is a manual galaxy.Scheduler. Time only moves when Advance is
// called, which makes renders reproducible.
type Clock struct {
	galaxy.FrameQueue
	now float64
}

func NewClock() *Clock { return &Clock{} }

// Now returns the clock reading.
func (c *Clock) Now() float64 { return c.now }

// Pending returns the number of scheduled frames.
func (c *Clock) Pending() int { return c.Len() }

// Advance moves the clock by dt seconds (negative values count as zero) and
// runs one frame: every callback scheduled before the call.
func (c *Clock) Advance(dt float64) {
	if dt > 0 {
		c.now += dt
	}
	c.Fire(c.now)
}
