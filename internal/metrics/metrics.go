// Package metrics exposes Prometheus collectors for the workflow engine,
// delivered through domain.LifecycleHooks.
package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/clarita-pm/clarita/pkg/domain"
)

// Collector holds the engine metrics.
type Collector struct {
	stepVisits  *prometheus.CounterVec
	suspensions *prometheus.CounterVec
	finishes    *prometheus.CounterVec
	ticks       prometheus.Histogram
}

// NewCollector creates and registers the collectors on the given
// registerer. Pass prometheus.DefaultRegisterer for the usual setup.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		stepVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clarita_step_visits_total",
				Help: "Total number of step executions",
			},
			[]string{"step_id"},
		),
		suspensions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clarita_suspensions_total",
				Help: "Total number of session suspensions",
			},
			[]string{"step_id"},
		),
		finishes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clarita_finishes_total",
				Help: "Total number of finished sessions by status",
			},
			[]string{"status"},
		),
		ticks: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "clarita_run_ticks",
				Help:    "Number of ticks consumed per engine run",
				Buckets: prometheus.LinearBuckets(1, 4, 8),
			},
		),
	}
	reg.MustRegister(c.stepVisits, c.suspensions, c.finishes, c.ticks)
	return c
}

// Hooks returns lifecycle hooks that feed the collectors.
func (c *Collector) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter: func(ctx context.Context, e *domain.StepEvent) {
			c.stepVisits.WithLabelValues(e.StepID).Inc()
		},
		OnSuspend: func(ctx context.Context, e *domain.StepEvent) {
			c.suspensions.WithLabelValues(e.StepID).Inc()
		},
		OnFinish: func(ctx context.Context, e *domain.FinishEvent) {
			c.finishes.WithLabelValues(string(e.Status)).Inc()
			c.ticks.Observe(float64(e.Ticks))
		},
	}
}
