/*
Package timeline schedules delayed callbacks on a single logical thread.

Both implementations keep pending callbacks in a deadline-ordered queue and
run them one at a time, so callbacks never overlap and fire in deadline order
(ties in scheduling order). Every callback can be cancelled through the Timer
returned by AfterFunc.

  - Realtime runs callbacks on one dispatcher goroutine driven by the wall clock.
  - Virtual runs callbacks only when Advance is called, which makes timeline
    tests deterministic.
*/
package timeline
