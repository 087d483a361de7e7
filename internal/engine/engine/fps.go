package engine

import "time"

// FPSCounter counts frames over intervals of at least one second.
type FPSCounter struct {
	clock  func() time.Time
	start  time.Time
	frames int
}

// NewFPSCounter creates a counter reading time from clock, or from
// time.Now when clock is nil.
func NewFPSCounter(clock func() time.Time) *FPSCounter {
	if clock == nil {
		clock = time.Now
	}
	c := &FPSCounter{clock: clock}
	c.Reset()
	return c
}

// Reset starts a new interval.
func (c *FPSCounter) Reset() {
	c.start = c.clock()
	c.frames = 0
}

// Tick counts a frame. It returns the frame rate once a second or more has
// passed since the interval started, and 0 otherwise.
func (c *FPSCounter) Tick() int {
	c.frames++
	now := c.clock()
	elapsed := now.Sub(c.start).Milliseconds()
	if elapsed < 1000 {
		return 0
	}
	fps := int(int64(c.frames) * 1000 / elapsed)
	c.start = now
	c.frames = 0
	return fps
}
