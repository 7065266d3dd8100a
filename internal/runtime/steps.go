package runtime

import (
	"time"

	"github.com/aretw0/slipbox/pkg/domain"
)

// step is one (offset, effect) pair of a draw timeline.
type step struct {
	name   string
	offset time.Duration
	apply  func(*domain.Snapshot)
}

// timelineFor builds the steps of an accepted draw, ordered by offset.
// A redraw first clears the previous slip and brings the envelope back.
func timelineFor(t domain.Timings, redraw bool) []step {
	var steps []step
	var base time.Duration

	if redraw {
		steps = append(steps,
			step{"clear", 0, func(s *domain.Snapshot) {
				s.Phase = domain.PhaseClearing
				s.SlipPhase = domain.SlipInside
				s.Revealed = false
			}},
			step{"restore", t.ClearHide, func(s *domain.Snapshot) {
				s.EnvelopeVisible = true
				s.EnvelopeOpen = false
			}},
		)
		base = t.Teardown()
	}

	return append(steps,
		step{"open", base, func(s *domain.Snapshot) {
			s.Phase = domain.PhaseOpening
			s.EnvelopeOpen = true
		}},
		step{"emerge", base + t.SlipEmerge, func(s *domain.Snapshot) {
			s.Phase = domain.PhaseSliding
			s.SlipPhase = domain.SlipEmerging
		}},
		step{"fade", base + t.EnvelopeFade, func(s *domain.Snapshot) {
			s.Phase = domain.PhaseFading
			s.EnvelopeVisible = false
		}},
		step{"center", base + t.SlipCenter, func(s *domain.Snapshot) {
			s.Phase = domain.PhaseCentering
			s.SlipPhase = domain.SlipCentered
		}},
		step{"reveal", base + t.Reveal, func(s *domain.Snapshot) {
			s.Phase = domain.PhaseRevealed
			s.Revealed = true
			s.Busy = false
			s.EnvelopeOpen = false
		}},
	)
}

// restingState is the envelope closed and visible with no slip out.
func restingState() domain.Snapshot {
	return domain.Snapshot{
		Phase:           domain.PhaseIdle,
		EnvelopeVisible: true,
		SlipPhase:       domain.SlipInside,
	}
}

// PlannedStep describes one step of a draw timeline without running it.
type PlannedStep struct {
	Name   string
	Offset time.Duration
	Phase  domain.Phase
}

// Plan lists the steps a draw would schedule with t, and the phase each
// one leaves the box in.
func Plan(t domain.Timings, redraw bool) []PlannedStep {
	scratch := restingState()
	steps := timelineFor(t, redraw)
	out := make([]PlannedStep, 0, len(steps))
	for _, st := range steps {
		st.apply(&scratch)
		out = append(out, PlannedStep{Name: st.name, Offset: st.offset, Phase: scratch.Phase})
	}
	return out
}
