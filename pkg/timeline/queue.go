package timeline

import (
	"container/heap"
	"sync"
	"time"
)

type entry struct {
	at    time.Time
	seq   uint64
	fn    func()
	index int // position in the heap, -1 once removed
	q     *queue
}

func (e *entry) Stop() bool {
	return e.q.remove(e)
}

type entryHeap []*entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].at.Equal(h[j].at) {
		return h[i].seq < h[j].seq
	}
	return h[i].at.Before(h[j].at)
}

func (h entryHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *entryHeap) Push(x any) {
	e := x.(*entry)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// queue is a deadline-ordered set of pending callbacks.
type queue struct {
	mu  sync.Mutex
	h   entryHeap
	seq uint64
}

func (q *queue) push(at time.Time, fn func()) *entry {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.seq++
	e := &entry{at: at, seq: q.seq, fn: fn, q: q}
	heap.Push(&q.h, e)
	return e
}

func (q *queue) remove(e *entry) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if e.index < 0 {
		return false
	}
	heap.Remove(&q.h, e.index)
	return true
}

// popDue removes and returns the earliest entry due at or before now.
func (q *queue) popDue(now time.Time) *entry {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.h) == 0 || q.h[0].at.After(now) {
		return nil
	}
	return heap.Pop(&q.h).(*entry)
}

func (q *queue) next() (time.Time, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.h) == 0 {
		return time.Time{}, false
	}
	return q.h[0].at, true
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.h)
}
