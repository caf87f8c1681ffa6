package timestamp

import (
	"sync"
	"time"
)

// Clock supplies the current wall-clock time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// FixedClock always reports the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// SequenceClock returns its instants in order and then keeps repeating the last one.
type SequenceClock struct {
	mu    sync.Mutex
	times []time.Time
	next  int
}

func NewSequenceClock(times ...time.Time) *SequenceClock {
	return &SequenceClock{times: times}
}

func (c *SequenceClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.times) == 0 {
		return time.Time{}
	}
	t := c.times[c.next]
	if c.next < len(c.times)-1 {
		c.next++
	}
	return t
}
