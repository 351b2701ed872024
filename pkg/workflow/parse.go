package workflow

import (
	"context"
	"log/slog"

	"github.com/clarita-pm/clarita/pkg/domain"
	"github.com/clarita-pm/clarita/pkg/ports"
)

// StepParse is the node ID of the parse step.
const StepParse = "parse"

// parseStep turns the raw request text into structured fields. It calls the
// extractor collaborator and falls back to the deterministic pattern matcher
// on failure. It never fails outright: absent fields are valid output.
type parseStep struct {
	extractor ports.Extractor
	logger    *slog.Logger
}

func (s *parseStep) ID() string { return StepParse }

func (s *parseStep) Run(ctx context.Context, sess *domain.Session) Outcome {
	text := sess.Fields.RawText

	fields, err := s.extractor.Extract(ctx, text)
	if err != nil {
		s.logger.Warn("extractor unavailable, using pattern fallback",
			"session_id", sess.ID, "err", err)
		fields = ParseFallback(text)
	}

	return Continue(fields)
}
