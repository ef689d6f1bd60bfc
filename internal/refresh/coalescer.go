// Package refresh coalesces bursts of provider change notifications into
// single re-snapshot cycles.
package refresh

import (
	"context"
	"sync"
	"time"

	"github.com/hollowbyte/it2jump/internal/provider"
	"github.com/hollowbyte/it2jump/internal/session"
)

// DefaultDelay is the quiet window used to absorb notification bursts.
const DefaultDelay = 200 * time.Millisecond

// Snapshotter is the slice of the provider the coalescer needs.
type Snapshotter interface {
	Snapshot(ctx context.Context) (session.Snapshot, error)
}

// Update carries the outcome of one refresh cycle. Err is set when the fetch
// failed; the coalescer itself never stops on fetch errors.
type Update struct {
	Snapshot session.Snapshot
	Err      error
}

// Coalescer folds any number of notifications arriving within the delay
// window into exactly one snapshot fetch. A pending flag marks outstanding
// work; at most one loop goroutine runs at a time, so a burst of Notify calls
// while a loop is active never spawns a second one.
type Coalescer struct {
	source  Snapshotter
	delay   time.Duration
	ctx     context.Context
	updates chan Update

	mu      sync.Mutex
	pending bool
	running bool
}

// NewCoalescer builds a coalescer bound to ctx. A non-positive delay falls
// back to DefaultDelay.
func NewCoalescer(ctx context.Context, source Snapshotter, delay time.Duration) *Coalescer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Coalescer{
		source:  source,
		delay:   delay,
		ctx:     ctx,
		updates: make(chan Update, 1),
	}
}

// Updates returns the channel refresh outcomes are published on.
func (c *Coalescer) Updates() <-chan Update {
	return c.updates
}

// Notify marks a refresh as pending and starts the coalescing loop if one is
// not already running. Safe for concurrent use.
func (c *Coalescer) Notify() {
	c.mu.Lock()
	c.pending = true
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	c.mu.Unlock()
	go c.loop()
}

// Listen forwards every notification from events into Notify until the
// channel closes or ctx is cancelled.
func (c *Coalescer) Listen(events <-chan provider.Notification) {
	for {
		select {
		case <-c.ctx.Done():
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			c.Notify()
		}
	}
}

// loop runs while work is pending. Each iteration waits out the quiet window
// first and only then clears the pending flag and fetches, so an entire burst
// arriving within the window is absorbed by a single snapshot call, while any
// notification received after the flag check is honoured by a following fetch.
func (c *Coalescer) loop() {
	timer := time.NewTimer(c.delay)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		c.mu.Lock()
		if !c.pending {
			c.running = false
			c.mu.Unlock()
			return
		}
		c.mu.Unlock()

		timer.Reset(c.delay)
		select {
		case <-c.ctx.Done():
			c.stop()
			return
		case <-timer.C:
		}

		c.mu.Lock()
		c.pending = false
		c.mu.Unlock()

		snap, err := c.source.Snapshot(c.ctx)
		if c.ctx.Err() != nil {
			c.stop()
			return
		}
		select {
		case c.updates <- Update{Snapshot: snap, Err: err}:
		case <-c.ctx.Done():
			c.stop()
			return
		}
	}
}

func (c *Coalescer) stop() {
	c.mu.Lock()
	c.running = false
	c.pending = false
	c.mu.Unlock()
}
