package timeline

import (
	"sync"
	"time"
)

// Realtime runs callbacks on a single dispatcher goroutine.
// A slow callback delays the ones behind it; it never runs them concurrently.
type Realtime struct {
	q    queue
	wake chan struct{}
	done chan struct{}
	once sync.Once
}

// NewRealtime starts the dispatcher. Call Close to stop it.
func NewRealtime() *Realtime {
	r := &Realtime{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go r.run()
	return r
}

// Now returns the wall clock time.
func (r *Realtime) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules fn to run on the dispatcher after d.
func (r *Realtime) AfterFunc(d time.Duration, fn func()) Timer {
	e := r.q.push(time.Now().Add(d), fn)
	select {
	case r.wake <- struct{}{}:
	default:
	}
	return e
}

// Close stops the dispatcher. Pending callbacks are dropped.
func (r *Realtime) Close() {
	r.once.Do(func() { close(r.done) })
}

func (r *Realtime) run() {
	t := time.NewTimer(time.Hour)
	t.Stop()
	defer t.Stop()

	for {
		for e := r.q.popDue(time.Now()); e != nil; e = r.q.popDue(time.Now()) {
			select {
			case <-r.done:
				return
			default:
			}
			e.fn()
		}

		if at, ok := r.q.next(); ok {
			t.Reset(time.Until(at))
		}

		select {
		case <-t.C:
		case <-r.wake:
			t.Stop()
		case <-r.done:
			return
		}
	}
}
