package core

import (
	"context"
	"iter"
	"time"
)

// Clock paces the simulation at a fixed tick rate and converts wall-clock
// timestamps into time elapsed since the clock was (re)started.
type Clock struct {
	interval time.Duration
	start    time.Time
}

// NewClock creates a clock ticking tickRate times per second.
// Non-positive rates fall back to 60.
func NewClock(tickRate int) *Clock {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Clock{interval: time.Second / time.Duration(tickRate)}
}

// Interval returns the time between two ticks.
func (c *Clock) Interval() time.Duration {
	return c.interval
}

// Restart makes now the clock's zero point.
func (c *Clock) Restart(now time.Time) {
	c.start = now
}

// Elapsed returns the time since the last restart.
// The first call on a fresh clock starts it and returns zero.
func (c *Clock) Elapsed(now time.Time) time.Duration {
	if c.start.IsZero() {
		c.Restart(now)
		return 0
	}
	return now.Sub(c.start)
}

// Ticks returns an unbounded wall-clock paced sequence of elapsed times.
// Every range over it restarts the clock. The sequence ends as soon as ctx
// is canceled; a tick that races with cancellation is dropped.
func (c *Clock) Ticks(ctx context.Context) iter.Seq[time.Duration] {
	return func(yield func(time.Duration) bool) {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		c.Restart(time.Now())
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if ctx.Err() != nil {
					return
				}
				if !yield(c.Elapsed(now)) {
					return
				}
			}
		}
	}
}

// Steps returns a synthetic sequence of n fixed-step elapsed times
// (interval, 2*interval, ...) without waiting. n <= 0 is unbounded.
func (c *Clock) Steps(n int) iter.Seq[time.Duration] {
	return func(yield func(time.Duration) bool) {
		for i := 1; n <= 0 || i <= n; i++ {
			if !yield(time.Duration(i) * c.interval) {
				return
			}
		}
	}
}
