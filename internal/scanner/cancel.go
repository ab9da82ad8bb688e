package scanner

import (
	"sync"
	"sync/atomic"
	"time"
)

// controller coordinates cooperative cancellation. Workers poll
// IsCancelled at entry boundaries; blocked queue consumers are woken
// through the Done channel. Cancellation can come from two causes —
// deadline expiry or an external stop — and the first cause wins:
// TimedOut reports true only when the deadline fired first.
type controller struct {
	cancelled atomic.Bool
	timedOut  atomic.Bool
	done      chan struct{}
	once      sync.Once
	timer     *time.Timer
}

func newController() *controller {
	return &controller{done: make(chan struct{})}
}

// Start arms the deadline timer. A zero or negative timeout means the
// scan runs without a deadline.
func (c *controller) Start(timeout time.Duration) {
	if timeout <= 0 {
		return
	}
	c.timer = time.AfterFunc(timeout, func() { c.trip(true) })
}

// Cancel requests an external stop (operator interrupt). Unlike a
// deadline expiry it leaves TimedOut false.
func (c *controller) Cancel() {
	c.trip(false)
}

func (c *controller) trip(byDeadline bool) {
	c.once.Do(func() {
		if byDeadline {
			c.timedOut.Store(true)
		}
		c.cancelled.Store(true)
		close(c.done)
	})
}

// IsCancelled is the cheap poll used by workers between entries.
func (c *controller) IsCancelled() bool {
	return c.cancelled.Load()
}

// TimedOut reports whether cancellation was caused by the deadline.
func (c *controller) TimedOut() bool {
	return c.timedOut.Load()
}

// Done is closed when cancellation fires, whatever the cause.
func (c *controller) Done() <-chan struct{} {
	return c.done
}

// StopTimer releases the deadline timer after the scan completes. A timer
// that already fired is a no-op.
func (c *controller) StopTimer() {
	if c.timer != nil {
		c.timer.Stop()
	}
}
