package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/slipbox/pkg/domain"
)

// LoggingHooks writes one structured record per event.
// Rejected draws and stale steps are logged at Debug.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnDraw: func(ctx context.Context, e *domain.DrawEvent) {
			level := slog.LevelInfo
			if !e.Outcome.Accepted() {
				level = slog.LevelDebug
			}
			logger.Log(ctx, level, "draw",
				"outcome", e.Outcome,
				"generation", e.Generation,
				"slip_key", e.SlipKey,
				"remaining", e.Remaining,
			)
		},
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			if e.Stale {
				logger.DebugContext(ctx, "stale_step", "step", e.Step, "generation", e.Generation)
				return
			}
			logger.InfoContext(ctx, "transition",
				"step", e.Step,
				"from", e.From,
				"to", e.To,
				"generation", e.Generation,
			)
		},
		OnReset: func(ctx context.Context, e *domain.EventBase) {
			logger.InfoContext(ctx, "reset", "generation", e.Generation)
		},
	}
}
