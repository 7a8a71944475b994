// Package clock is a frame driven scheduler for delayed and repeating
// callbacks. Time only moves when Advance is called, so a paused or sleeping
// scene simply stops advancing its clock.
package clock

import "time"

// FrameDuration is the fixed step the game loop advances per update.
const FrameDuration = time.Second / 60

// Event is a handle to a scheduled callback.
type Event struct {
	clock  *Clock
	id     uint64
	delay  time.Duration
	due    time.Duration
	repeat bool
	fn     func()

	done      bool
	remaining time.Duration
}

// Clock owns a set of pending events and a monotonic "now".
type Clock struct {
	now    time.Duration
	nextID uint64
	events []*Event
}

func New() *Clock {
	return &Clock{}
}

// Now is the total time advanced so far.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Schedule registers fn to run once delay has elapsed. Repeating events
// re-arm with the same delay after every firing. A repeating event needs a
// positive delay; otherwise it is scheduled as a one-shot.
func (c *Clock) Schedule(delay time.Duration, fn func(), repeat bool) *Event {
	if delay < 0 {
		delay = 0
	}
	if delay == 0 {
		repeat = false
	}
	c.nextID++
	ev := &Event{
		clock:  c,
		id:     c.nextID,
		delay:  delay,
		due:    c.now + delay,
		repeat: repeat,
		fn:     fn,
	}
	c.events = append(c.events, ev)
	return ev
}

// Pending returns the number of live events.
func (c *Clock) Pending() int {
	n := 0
	for _, ev := range c.events {
		if !ev.done {
			n++
		}
	}
	return n
}

// RemoveAll cancels every pending event. Events cancelled while Advance is
// dispatching are never fired.
func (c *Clock) RemoveAll() {
	for _, ev := range c.events {
		ev.cancel()
	}
	c.events = nil
}

// Advance moves time forward by dt and fires every event whose deadline has
// been crossed, earliest deadline first. Ties fire in scheduling order.
func (c *Clock) Advance(dt time.Duration) {
	if dt < 0 {
		return
	}
	c.now += dt

	for {
		ev := c.nextDue()
		if ev == nil {
			break
		}
		if ev.repeat {
			ev.due += ev.delay
		} else {
			ev.done = true
			ev.remaining = 0
		}
		if ev.fn != nil {
			ev.fn()
		}
	}
	c.compact()
}

func (c *Clock) nextDue() *Event {
	var best *Event
	for _, ev := range c.events {
		if ev.done || ev.due > c.now {
			continue
		}
		if best == nil || ev.due < best.due || (ev.due == best.due && ev.id < best.id) {
			best = ev
		}
	}
	return best
}

func (c *Clock) compact() {
	live := c.events[:0]
	for _, ev := range c.events {
		if !ev.done {
			live = append(live, ev)
		}
	}
	for i := len(live); i < len(c.events); i++ {
		c.events[i] = nil
	}
	c.events = live
}

// Cancel stops the event. Its remaining time is frozen at the moment of
// cancellation. Cancelling twice is a no-op.
func (e *Event) Cancel() {
	if e == nil {
		return
	}
	e.cancel()
}

func (e *Event) cancel() {
	if e.done {
		return
	}
	e.remaining = e.due - e.clock.now
	if e.remaining < 0 {
		e.remaining = 0
	}
	e.done = true
}

// Remaining is the time until the event next fires. A fired one-shot reports
// zero and a cancelled event reports what was left when it was cancelled.
func (e *Event) Remaining() time.Duration {
	if e == nil {
		return 0
	}
	if e.done {
		return e.remaining
	}
	r := e.due - e.clock.now
	if r < 0 {
		return 0
	}
	return r
}

// Active reports whether the event can still fire.
func (e *Event) Active() bool {
	return e != nil && !e.done
}
