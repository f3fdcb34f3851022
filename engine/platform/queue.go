package platform

import "github.com/hubastard/hellogl/engine/core"

// EventQueue is a FIFO filled by window callbacks and drained by the frame loop.
// Both happen on the main thread, so it is not synchronised.
type EventQueue struct {
	evs  []core.Event
	head int
}

func (q *EventQueue) Push(ev core.Event) { q.evs = append(q.evs, ev) }

func (q *EventQueue) Pop() (core.Event, bool) {
	if q.head >= len(q.evs) {
		// Reuse the backing array once drained.
		q.evs = q.evs[:0]
		q.head = 0
		return nil, false
	}
	ev := q.evs[q.head]
	q.evs[q.head] = nil
	q.head++
	return ev, true
}

func (q *EventQueue) Len() int { return len(q.evs) - q.head }
