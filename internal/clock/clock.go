// Package clock abstracts the wall clock so space and post creation can be
// tested with deterministic timestamps.
package clock

import (
	"sync"
	"time"
)

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

// Real returns a Clock backed by time.Now.
func Real() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now() }

// FixedClock is a Clock that only moves when told to. Safe for concurrent use.
type FixedClock struct {
	mu      sync.Mutex
	current time.Time
}

// Fixed returns a FixedClock stopped at t.
func Fixed(t time.Time) *FixedClock {
	return &FixedClock{current: t}
}

// Now returns the stored time.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

// Millis returns t as unix milliseconds, the timestamp unit used in space and post records.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}
