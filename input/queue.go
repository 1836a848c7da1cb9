package input

import (
	"sync/atomic"
)

// QueueSize is the ring capacity; a power of two so slots are found by mask
const QueueSize = 1024

const slotMask = QueueSize - 1

// Queue carries events from frontend and stream goroutines to the tick.
//
// Any number of goroutines may Push; only the tick calls Drain. A producer
// claims a slot by advancing tail, writes the event, then marks the slot
// ready, so Drain stops at the first slot still being written and picks it up
// next tick. When producers outrun the tick by a full ring, the oldest
// unread events are overwritten and counted in Overwritten.
type Queue struct {
	slots [QueueSize]Event
	ready [QueueSize]atomic.Bool

	head atomic.Uint64 // next slot to drain
	tail atomic.Uint64 // next slot to claim

	overwritten atomic.Uint64
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push enqueues ev without blocking
func (q *Queue) Push(ev Event) {
	var slot uint64
	for {
		slot = q.tail.Load()
		if q.tail.CompareAndSwap(slot, slot+1) {
			break
		}
	}

	q.slots[slot&slotMask] = ev
	q.ready[slot&slotMask].Store(true)

	// Claiming a full ring evicts the oldest unread slot
	if head := q.head.Load(); slot+1-head > QueueSize {
		if q.head.CompareAndSwap(head, slot+1-QueueSize) {
			q.overwritten.Add(slot + 1 - QueueSize - head)
		}
	}
}

// Drain returns every ready event in push order, nil when there are none
func (q *Queue) Drain() []Event {
	for {
		head := q.head.Load()
		pending := q.tail.Load() - head
		if pending == 0 {
			return nil
		}
		if pending > QueueSize {
			head += pending - QueueSize
			pending = QueueSize
		}

		out := make([]Event, 0, pending)
		for i := uint64(0); i < pending; i++ {
			s := (head + i) & slotMask
			if !q.ready[s].Load() {
				break
			}
			out = append(out, q.slots[s])
			q.ready[s].Store(false)
		}

		if q.head.CompareAndSwap(head, head+uint64(len(out))) {
			if len(out) == 0 {
				return nil
			}
			return out
		}
	}
}

// Len returns the approximate number of unread events
func (q *Queue) Len() int {
	head, tail := q.head.Load(), q.tail.Load()
	if tail <= head {
		return 0
	}
	return int(min(tail-head, QueueSize))
}

// Overwritten returns how many unread events were evicted by a full ring
func (q *Queue) Overwritten() uint64 {
	return q.overwritten.Load()
}
