//go:build !tinygo

package hal

import (
	"sync"
	"time"
)

// hostClock is a wall clock that can run faster than real time so the
// half-hourly refresh can be watched without waiting.
type hostClock struct {
	mu sync.Mutex

	now    func() time.Time
	origin time.Time
	start  time.Time
	scale  float64
	loc    *time.Location
}

func newHostClock(now func() time.Time, startAt time.Time, scale float64, loc *time.Location) *hostClock {
	if scale <= 0 {
		scale = 1
	}
	if loc == nil {
		loc = time.Local
	}
	start := now()
	origin := startAt
	if origin.IsZero() {
		origin = start
	}
	return &hostClock{now: now, origin: origin, start: start, scale: scale, loc: loc}
}

func (c *hostClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	elapsed := c.now().Sub(c.start)
	if c.scale != 1 {
		elapsed = time.Duration(float64(elapsed) * c.scale)
	}
	return c.origin.Add(elapsed).In(c.loc)
}
