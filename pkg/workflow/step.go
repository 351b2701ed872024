package workflow

import (
	"context"

	"github.com/clarita-pm/clarita/pkg/domain"
)

// Kind is the closed set of step outcomes.
type Kind int

const (
	// KindContinue advances the cursor to the node's default successor.
	KindContinue Kind = iota
	// KindBranch advances the cursor along a named branch.
	KindBranch
	// KindSuspend halts the workflow awaiting external input.
	KindSuspend
	// KindFail terminates the session as failed.
	KindFail
)

// String returns the outcome kind for logs and events.
func (k Kind) String() string {
	switch k {
	case KindContinue:
		return "continue"
	case KindBranch:
		return "branch"
	case KindSuspend:
		return "suspend"
	case KindFail:
		return "fail"
	}
	return "unknown"
}

// Outcome is what a step hands back to the engine. Beyond the control-flow
// verdict it may carry field updates and step products (questions, hints,
// tickets) for the engine to fold into the session.
type Outcome struct {
	Kind   Kind
	Branch string

	// Fields is merged into the session's field bag (set-only, see
	// domain.FieldSet.Merge).
	Fields domain.FieldSet

	// Suspend payload.
	Prompt string
	Expect domain.ReplyKind

	// Fail payload.
	Reason string

	// Step products.
	Missing     []string
	Questions   []string
	SearchHints []string
	Tickets     []domain.Ticket
	Summary     string

	// RoundComplete signals that a clarification round-trip finished.
	RoundComplete bool
}

// Continue builds an advance-to-successor outcome carrying field updates.
func Continue(fields domain.FieldSet) Outcome {
	return Outcome{Kind: KindContinue, Fields: fields}
}

// Branch builds an outcome that follows the named branch.
func Branch(label string) Outcome {
	return Outcome{Kind: KindBranch, Branch: label}
}

// Suspend builds a halt-awaiting-input outcome.
func Suspend(prompt string, expect domain.ReplyKind) Outcome {
	return Outcome{Kind: KindSuspend, Prompt: prompt, Expect: expect}
}

// Fail builds a terminate-as-failed outcome.
func Fail(reason string) Outcome {
	return Outcome{Kind: KindFail, Reason: reason}
}

// Step is a single unit of workflow logic. Run receives the session
// read-only and reports what should happen next; all mutation is applied by
// the engine. A step instance executes at most once per logical pass unless
// the graph explicitly revisits it.
type Step interface {
	// ID names the step; it doubles as the node ID in the graph.
	ID() string

	// Run executes the step against the current session snapshot.
	Run(ctx context.Context, sess *domain.Session) Outcome
}
