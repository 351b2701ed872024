package ports

import (
	"context"

	"github.com/clarita-pm/clarita/pkg/domain"
)

// SessionStore defines the interface for persisting sessions. This is what
// lets a conversation suspend in one call and resume in a later one.
type SessionStore interface {
	// Save persists the session, keyed by its ID.
	Save(ctx context.Context, sess *domain.Session) error

	// Load retrieves a session by ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Session, error)

	// Delete removes a session by ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of all stored sessions.
	List(ctx context.Context) ([]string, error)
}
