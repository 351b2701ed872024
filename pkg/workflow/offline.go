package workflow

import (
	"context"

	"github.com/clarita-pm/clarita/pkg/domain"
)

// OfflineExtractor implements ports.Extractor without any network
// collaborator: extraction uses the deterministic pattern matcher and
// validation applies only the mandatory-field floor. It is the default for
// local runs and a convenient stand-in for tests.
type OfflineExtractor struct{}

// Extract runs the deterministic pattern matcher. It never fails.
func (OfflineExtractor) Extract(ctx context.Context, text string) (domain.FieldSet, error) {
	return ParseFallback(text), nil
}

// Validate requires target_page and feature_type, nothing more.
func (OfflineExtractor) Validate(ctx context.Context, text string, fields domain.FieldSet) (domain.Validation, error) {
	if fields.Complete() {
		return domain.Validation{Sufficient: true}, nil
	}
	return domain.Validation{
		Sufficient: false,
		Missing:    fields.Missing(),
	}, nil
}
