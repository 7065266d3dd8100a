package timeline

import (
	"sync"
	"time"
)

// Virtual is a manually advanced clock.
// Callbacks run synchronously inside Advance, on the caller's goroutine.
type Virtual struct {
	mu  sync.Mutex
	now time.Time
	q   queue
}

// NewVirtual creates a virtual clock starting at start.
func NewVirtual(start time.Time) *Virtual {
	return &Virtual{now: start}
}

// Now returns the virtual time.
func (v *Virtual) Now() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now
}

// AfterFunc schedules fn to run once the clock has advanced by d.
func (v *Virtual) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	return v.q.push(v.Now().Add(d), fn)
}

// Advance moves the clock forward by d, running every callback that becomes
// due in deadline order. Callbacks scheduled by callbacks run too if they fall
// inside the window. It returns the number of callbacks run.
func (v *Virtual) Advance(d time.Duration) int {
	v.mu.Lock()
	target := v.now.Add(d)
	v.mu.Unlock()

	fired := 0
	for {
		e := v.q.popDue(target)
		if e == nil {
			break
		}
		v.mu.Lock()
		if e.at.After(v.now) {
			v.now = e.at
		}
		v.mu.Unlock()

		e.fn()
		fired++
	}

	v.mu.Lock()
	v.now = target
	v.mu.Unlock()
	return fired
}

// Pending returns the number of callbacks waiting to run.
func (v *Virtual) Pending() int {
	return v.q.len()
}
