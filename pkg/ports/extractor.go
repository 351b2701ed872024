package ports

import (
	"context"

	"github.com/clarita-pm/clarita/pkg/domain"
)

// Extractor is the natural-language collaborator the workflow calls to turn
// free text into structured fields and to judge request sufficiency.
//
// Both methods may fail (collaborator unreachable, unparseable output); the
// workflow recovers locally and never surfaces these failures to the caller.
// Both must be safe to call more than once with the same input.
type Extractor interface {
	// Extract turns free text into a (possibly partially empty) FieldSet.
	Extract(ctx context.Context, text string) (domain.FieldSet, error)

	// Validate judges whether the fields gathered so far are sufficient to
	// proceed autonomously, and if not, what is missing and what to ask.
	Validate(ctx context.Context, text string, fields domain.FieldSet) (domain.Validation, error)
}
