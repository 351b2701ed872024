package workflow

import (
	"context"

	"github.com/clarita-pm/clarita/internal/render"
	"github.com/clarita-pm/clarita/pkg/domain"
)

// Node IDs of the clarification branch.
const (
	StepClarify = "clarify"
	StepAwait   = "await_clarification"
)

// Branch labels yielded by the await step after a reply is classified.
const (
	BranchProceed = "proceed"
	BranchRecheck = "recheck"
)

// ReasonAbandoned is the failure reason recorded when the user declines to
// continue at a suspension point.
const ReasonAbandoned = "abandoned by user"

// clarifyStep finalizes the clarification payload: at most three
// conversational questions (extractor-provided if the gate got any, the
// fixed fallback otherwise) plus codebase search suggestions derived from
// the missing fields.
type clarifyStep struct{}

func (s *clarifyStep) ID() string { return StepClarify }

func (s *clarifyStep) Run(ctx context.Context, sess *domain.Session) Outcome {
	questions := sess.Questions
	if len(questions) == 0 {
		questions = FallbackQuestions
	}
	if len(questions) > 3 {
		questions = questions[:3]
	}

	out := Continue(domain.FieldSet{})
	out.Questions = questions
	out.SearchHints = searchHints(sess.Missing, sess.Fields)
	return out
}

// searchHints derives free-text codebase search suggestions from missing
// fields. They are advisory for the caller, never executed by the core.
func searchHints(missing []string, fields domain.FieldSet) []string {
	var hints []string
	for _, m := range missing {
		switch m {
		case domain.FieldTargetPage:
			hints = append(hints, "search the codebase for page components and routes to identify candidate pages")
		case domain.FieldFeatureType:
			if fields.TargetPage != "" {
				hints = append(hints, "search for existing UI elements on the "+fields.TargetPage+" page")
			} else {
				hints = append(hints, "search for existing UI component patterns to match the requested feature")
			}
		case domain.FieldAction:
			hints = append(hints, "search for event handlers and API calls wired to similar features")
		}
	}
	return hints
}

// awaitStep is the clarification suspension point. On first entry it halts
// the workflow with the rendered question prompt. On re-entry it consumes
// the injected reply: negative replies abandon the session, anything else
// proceeds with whatever data is available. The reply text itself is run
// through the pattern fallback so answers like "yes, the dashboard" still
// contribute fields.
type awaitStep struct {
	maxRounds int
}

func (s *awaitStep) ID() string { return StepAwait }

func (s *awaitStep) Run(ctx context.Context, sess *domain.Session) Outcome {
	reply := sess.Fields.Reply
	if reply == "" {
		return Suspend(render.ClarificationPrompt(sess), domain.ReplyClarification)
	}

	if Classify(reply) == VerdictAbandon {
		return Fail(ReasonAbandoned)
	}

	label := BranchProceed
	if sess.Rounds+1 < s.maxRounds {
		label = BranchRecheck
	}

	out := Branch(label)
	out.Fields = ParseFallback(reply)
	out.RoundComplete = true
	return out
}
