package renderer

import "time"

// Scene time for the interactive viewer. Only the running intervals between
// ticks accumulate, so pausing freezes the disk phase and resuming continues
// from it instead of jumping ahead by the paused wall time.
type sceneClock struct {
	simTime  float32
	lastTick time.Time
	running  bool
}

func newSceneClock(now time.Time) *sceneClock {
	return &sceneClock{lastTick: now, running: true}
}

// Advance the clock to now and return the accumulated scene time. Callers
// tick once per frame, paused or not, so the interval bookkeeping stays
// current across a pause.
func (c *sceneClock) Tick(now time.Time) float32 {
	if c.running {
		c.simTime += float32(now.Sub(c.lastTick).Seconds())
	}
	c.lastTick = now
	return c.simTime
}

// Toggle between running and paused.
func (c *sceneClock) Toggle() {
	c.running = !c.running
}
