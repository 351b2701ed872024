package domain

import (
	"context"
	"time"
)

// StepEvent describes one tick of a session through a graph node.
type StepEvent struct {
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
	StepID    string    `json:"step_id"`
	Outcome   string    `json:"outcome,omitempty"`
}

// FinishEvent describes a session reaching a sink state.
type FinishEvent struct {
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
	Status    Status    `json:"status"`
	Ticks     int       `json:"ticks"`
}

// LifecycleHooks defines callbacks for engine observability.
// Nil callbacks are skipped.
type LifecycleHooks struct {
	OnStepEnter func(context.Context, *StepEvent)
	OnStepLeave func(context.Context, *StepEvent)
	OnSuspend   func(context.Context, *StepEvent)
	OnFinish    func(context.Context, *FinishEvent)
}
