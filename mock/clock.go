package mock

import (
	"context"
	"sync"
	"time"
)

// Clock is a fake wait.Clock, Sleep advances Now instantly
type Clock struct {
	mu      sync.Mutex
	start   time.Time
	now     time.Time
	sleeps  []time.Duration
	onSleep func(d time.Duration)
}

// MakeClock starting at a fixed instant
func MakeClock() *Clock {
	start := time.Date(2020, 5, 1, 12, 0, 0, 0, time.UTC)
	return &Clock{start: start, now: start}
}

// Now returns the fake time
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Sleep records d and moves the clock forward
func (c *Clock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.sleeps = append(c.sleeps, d)
	hook := c.onSleep
	c.mu.Unlock()

	if hook != nil {
		hook(d)
	}
	return nil
}

// Advance the clock without recording a sleep, used to simulate slow work
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// OnSleep is called after every Sleep
func (c *Clock) OnSleep(fn func(d time.Duration)) {
	c.mu.Lock()
	c.onSleep = fn
	c.mu.Unlock()
}

// Elapsed since the clock was made
func (c *Clock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now.Sub(c.start)
}

// Sleeps taken so far
func (c *Clock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := make([]time.Duration, len(c.sleeps))
	copy(s, c.sleeps)
	return s
}
