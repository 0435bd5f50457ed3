// Package simclock provides a virtual-time implementation of
// lifecycle.Timers for deterministic tests.
//
// Time only moves when Advance is called. Due timers fire in deadline order,
// ties broken by scheduling order, and callbacks run synchronously on the
// goroutine calling Advance, which stands in for the host event loop.
package simclock

import (
	"container/heap"
	"time"

	"github.com/five82/framewatch/internal/lifecycle"
)

const minPeriod = time.Millisecond

// Clock is a manually driven timer facility. It is not safe for concurrent
// use.
type Clock struct {
	now    time.Time
	queue  timerQueue
	live   map[lifecycle.TimerHandle]*timer
	nextID lifecycle.TimerHandle
	seq    uint64
	fired  uint64
}

var _ lifecycle.Timers = (*Clock)(nil)

type timer struct {
	fn     func()
	when   time.Time
	period time.Duration
	id     lifecycle.TimerHandle
	seq    uint64
	index  int
}

// New returns a Clock starting at start. A zero start uses the Unix epoch.
func New(start time.Time) *Clock {
	if start.IsZero() {
		start = time.Unix(0, 0).UTC()
	}
	return &Clock{
		now:  start,
		live: make(map[lifecycle.TimerHandle]*timer),
	}
}

// Now returns the virtual time.
func (c *Clock) Now() time.Time {
	return c.now
}

// Schedule implements lifecycle.Timers. Negative delays are treated as zero
// and repeating timers fire at most once per millisecond.
func (c *Clock) Schedule(fn func(), delay time.Duration, repeating bool) lifecycle.TimerHandle {
	if fn == nil {
		return lifecycle.NoTimer
	}
	if delay < 0 {
		delay = 0
	}
	c.nextID++
	t := &timer{
		fn:   fn,
		when: c.now.Add(delay),
		id:   c.nextID,
	}
	if repeating {
		t.period = max(delay, minPeriod)
	}
	c.push(t)
	c.live[t.id] = t
	return t.id
}

// Cancel implements lifecycle.Timers.
func (c *Clock) Cancel(h lifecycle.TimerHandle) {
	t, ok := c.live[h]
	if !ok {
		return
	}
	delete(c.live, h)
	if t.index >= 0 {
		heap.Remove(&c.queue, t.index)
	}
}

// Advance moves the clock forward by d, firing every timer that falls due,
// and leaves the clock at now+d.
func (c *Clock) Advance(d time.Duration) {
	c.AdvanceTo(c.now.Add(d))
}

// AdvanceTo moves the clock to target, firing due timers on the way. Targets
// in the past are ignored.
func (c *Clock) AdvanceTo(target time.Time) {
	if target.Before(c.now) {
		return
	}
	for c.queue.Len() > 0 {
		next := c.queue[0]
		if next.when.After(target) {
			break
		}
		heap.Pop(&c.queue)
		c.now = next.when

		if next.period > 0 {
			next.when = next.when.Add(next.period)
			c.push(next)
		} else {
			delete(c.live, next.id)
		}

		c.fired++
		next.fn()
	}
	c.now = target
}

// Pending returns how many timers are armed.
func (c *Clock) Pending() int {
	return len(c.live)
}

// Fired returns how many callbacks have run.
func (c *Clock) Fired() uint64 {
	return c.fired
}

func (c *Clock) push(t *timer) {
	c.seq++
	t.seq = c.seq
	heap.Push(&c.queue, t)
}

type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].when.Equal(q[j].when) {
		return q[i].seq < q[j].seq
	}
	return q[i].when.Before(q[j].when)
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
