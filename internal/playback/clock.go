package playback

import (
	"context"
	"sync"
	"time"
)

const defaultTick = 250 * time.Millisecond

// Clock publishes the playback position at a fixed tick.
type Clock struct {
	tick time.Duration
	now  func() time.Time

	mu     sync.Mutex
	subs   map[int]func(time.Duration)
	nextID int
}

// NewClock returns a clock ticking every tick. Non-positive ticks use 250ms.
func NewClock(tick time.Duration) *Clock {
	if tick <= 0 {
		tick = defaultTick
	}
	return &Clock{
		tick: tick,
		now:  time.Now,
		subs: make(map[int]func(time.Duration)),
	}
}

// Subscribe registers fn for position updates and returns the function that
// removes it. Calling the returned function more than once is harmless.
func (c *Clock) Subscribe(fn func(time.Duration)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// Subscribers returns the number of active subscriptions.
func (c *Clock) Subscribers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}

// Publish delivers pos to every subscriber.
func (c *Clock) Publish(pos time.Duration) {
	c.mu.Lock()
	fns := make([]func(time.Duration), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.mu.Unlock()
	for _, fn := range fns {
		fn(pos)
	}
}

// Run publishes the elapsed time since Run was called on every tick until ctx
// is done. A final update is published on return.
func (c *Clock) Run(ctx context.Context) {
	start := c.now()
	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()
	c.Publish(0)
	for {
		select {
		case <-ctx.Done():
			c.Publish(c.now().Sub(start))
			return
		case <-ticker.C:
			c.Publish(c.now().Sub(start))
		}
	}
}
