package metrics_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarita-pm/clarita/internal/metrics"
	"github.com/clarita-pm/clarita/pkg/domain"
)

func TestCollector_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	hooks := metrics.NewCollector(reg).Hooks()
	ctx := context.Background()

	step := func(id string) *domain.StepEvent {
		return &domain.StepEvent{Timestamp: time.Now().UTC(), SessionID: "s1", StepID: id}
	}

	hooks.OnStepEnter(ctx, step("parse"))
	hooks.OnStepEnter(ctx, step("gate"))
	hooks.OnStepEnter(ctx, step("gate"))
	hooks.OnSuspend(ctx, step("review"))
	hooks.OnFinish(ctx, &domain.FinishEvent{
		Timestamp: time.Now().UTC(),
		SessionID: "s1",
		Status:    domain.StatusSucceeded,
		Ticks:     5,
	})

	families, err := reg.Gather()
	require.NoError(t, err)

	byName := map[string]bool{}
	for _, f := range families {
		byName[f.GetName()] = true
	}
	assert.True(t, byName["clarita_step_visits_total"])
	assert.True(t, byName["clarita_suspensions_total"])
	assert.True(t, byName["clarita_finishes_total"])
	assert.True(t, byName["clarita_run_ticks"])
}

func TestCollector_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	hooks := metrics.NewCollector(reg).Hooks()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		hooks.OnStepEnter(ctx, &domain.StepEvent{StepID: "parse"})
	}
	hooks.OnFinish(ctx, &domain.FinishEvent{Status: domain.StatusFailed, Ticks: 2})

	expected := `
# HELP clarita_finishes_total Total number of finished sessions by status
# TYPE clarita_finishes_total counter
clarita_finishes_total{status="failed"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "clarita_finishes_total"))
}
