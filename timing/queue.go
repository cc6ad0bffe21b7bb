package timing

import "container/heap"

// eventQueue orders events by time. Events at the same time come out in the
// order they were pushed.
type eventQueue struct {
	entries queueEntries
	pushed  uint64
}

type queueEntry struct {
	evt Event
	seq uint64
}

func (q *eventQueue) push(evt Event) {
	heap.Push(&q.entries, queueEntry{evt: evt, seq: q.pushed})
	q.pushed++
}

func (q *eventQueue) pop() (Event, bool) {
	if len(q.entries) == 0 {
		return nil, false
	}

	return heap.Pop(&q.entries).(queueEntry).evt, true
}

type queueEntries []queueEntry

func (h queueEntries) Len() int { return len(h) }

func (h queueEntries) Less(i, j int) bool {
	ti, tj := h[i].evt.Time(), h[j].evt.Time()
	if ti != tj {
		return ti < tj
	}

	return h[i].seq < h[j].seq
}

func (h queueEntries) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *queueEntries) Push(x any) { *h = append(*h, x.(queueEntry)) }

func (h *queueEntries) Pop() any {
	last := (*h)[len(*h)-1]
	*h = (*h)[:len(*h)-1]

	return last
}
