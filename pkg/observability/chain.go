package observability

import (
	"context"

	"github.com/aretw0/slipbox/pkg/domain"
)

// Chain combines multiple hook sets into one. Hooks run in the given order.
func Chain(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnDraw: func(ctx context.Context, e *domain.DrawEvent) {
			for _, h := range sets {
				if h.OnDraw != nil {
					h.OnDraw(ctx, e)
				}
			}
		},
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			for _, h := range sets {
				if h.OnTransition != nil {
					h.OnTransition(ctx, e)
				}
			}
		},
		OnReset: func(ctx context.Context, e *domain.EventBase) {
			for _, h := range sets {
				if h.OnReset != nil {
					h.OnReset(ctx, e)
				}
			}
		},
	}
}
