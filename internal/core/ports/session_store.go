package ports

import (
	"context"

	"github.com/99minutos/decision-service/internal/core/domain"
)

// SessionStore persists sessions under their opaque token.
type SessionStore interface {
	// Save stores s, replacing any session with the same token.
	Save(ctx context.Context, s *domain.Session) error
	// Get returns domain.ErrSessionNotFound for unknown or expired tokens.
	Get(ctx context.Context, token string) (*domain.Session, error)
	// Delete removes the session. Deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) error
}
