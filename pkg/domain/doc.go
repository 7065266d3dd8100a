/*
Package domain contains the core models of the slipbox card: sentence draws,
the envelope/slip visual phases and the snapshots renderers consume.

It is kept pure and free of I/O, timers and persistence. The sequencer that
mutates these values lives in internal/runtime; adapters only read them.

# Key Entities

  - Phase: coarse label of the reveal sequence (Idle, Opening, ... Revealed).
  - SlipPosition: where the slip is relative to the envelope.
  - Snapshot: the full observable state, re-emitted on every transition.
  - Timings: step offsets of the reveal timeline.
  - DrawOutcome: accept/reject result of a draw request.
*/
package domain
