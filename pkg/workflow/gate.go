package workflow

import (
	"context"
	"log/slog"

	"github.com/clarita-pm/clarita/pkg/domain"
	"github.com/clarita-pm/clarita/pkg/ports"
)

// StepGate is the node ID of the sufficiency gate.
const StepGate = "gate"

// Branch labels yielded by the gate.
const (
	BranchSufficient   = "sufficient"
	BranchInsufficient = "insufficient"
)

// FallbackQuestions is the fixed question set used when the extractor cannot
// provide its own.
var FallbackQuestions = []string{
	"Which page should this feature be added to?",
	"What type of feature should be added?",
	"What should happen when this feature is used?",
}

// gateStep asks the extractor whether the gathered fields are sufficient to
// proceed autonomously. Sufficiency always requires at minimum target_page
// and feature_type, whatever the extractor says; an unreachable extractor is
// treated as insufficient, never silently proceeded past.
type gateStep struct {
	extractor ports.Extractor
	logger    *slog.Logger
}

func (s *gateStep) ID() string { return StepGate }

func (s *gateStep) Run(ctx context.Context, sess *domain.Session) Outcome {
	verdict, err := s.extractor.Validate(ctx, sess.Fields.RawText, sess.Fields)
	if err != nil {
		s.logger.Warn("validation unavailable, treating request as insufficient",
			"session_id", sess.ID, "err", err)
		verdict = domain.Validation{Sufficient: false}
	}

	// Local floor: the extractor may tighten the requirements but never
	// loosen them below the two mandatory fields.
	if !sess.Fields.Complete() {
		verdict.Sufficient = false
	}

	if verdict.Sufficient {
		return Branch(BranchSufficient)
	}

	missing := verdict.Missing
	if len(missing) == 0 {
		missing = sess.Fields.Missing()
	}

	out := Branch(BranchInsufficient)
	out.Missing = missing
	out.Questions = verdict.Questions
	return out
}
