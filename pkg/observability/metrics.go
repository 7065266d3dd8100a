package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/slipbox/pkg/domain"
)

// Metrics records slipbox activity in Prometheus.
type Metrics struct {
	Draws       *prometheus.CounterVec
	Transitions *prometheus.CounterVec
	StaleSteps  prometheus.Counter
	Resets      prometheus.Counter
	Remaining   prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Draws: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slipbox_draw_requests_total",
				Help: "Draw requests by outcome",
			},
			[]string{"outcome"},
		),
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slipbox_transitions_total",
				Help: "Timeline steps applied, by step name",
			},
			[]string{"step"},
		),
		StaleSteps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "slipbox_stale_steps_total",
			Help: "Timeline steps that fired after their sequence was superseded",
		}),
		Resets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "slipbox_resets_total",
			Help: "Reset requests",
		}),
		Remaining: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "slipbox_sentences_remaining",
			Help: "Sentences left in the pool",
		}),
	}
	reg.MustRegister(m.Draws, m.Transitions, m.StaleSteps, m.Resets, m.Remaining)
	return m
}

// Hooks returns lifecycle hooks feeding the counters. Gauges are left to
// Observe, which sees every published snapshot in order.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnDraw: func(_ context.Context, e *domain.DrawEvent) {
			m.Draws.WithLabelValues(string(e.Outcome)).Inc()
		},
		OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
			if e.Stale {
				m.StaleSteps.Inc()
				return
			}
			m.Transitions.WithLabelValues(e.Step).Inc()
		},
		OnReset: func(context.Context, *domain.EventBase) {
			m.Resets.Inc()
		},
	}
}

// Observe sets the gauges from a snapshot. It is their only writer.
func (m *Metrics) Observe(s domain.Snapshot) {
	m.Remaining.Set(float64(s.RemainingCount))
}
