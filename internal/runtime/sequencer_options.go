package runtime

import (
	"log/slog"

	"github.com/aretw0/slipbox/pkg/domain"
)

// Option configures the Sequencer.
type Option func(*Sequencer)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sequencer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Sequencer) {
		s.hooks = hooks
	}
}

// WithTimings overrides the reveal timeline.
func WithTimings(t domain.Timings) Option {
	return func(s *Sequencer) {
		s.timings = t
	}
}

// WithIntroGate makes the first draw request after start or reset only
// complete the intro instead of drawing a slip.
func WithIntroGate(enabled bool) Option {
	return func(s *Sequencer) {
		s.introGate = enabled
	}
}

// WithKeyFunc sets the generator for slip keys.
func WithKeyFunc(fn func() string) Option {
	return func(s *Sequencer) {
		if fn != nil {
			s.newKey = fn
		}
	}
}
