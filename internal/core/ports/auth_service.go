package ports

import (
	"context"

	"github.com/99minutos/decision-service/internal/core/domain"
)

// AuthService issues, resolves and destroys sessions.
type AuthService interface {
	Login(ctx context.Context, identifier, secret string) (*domain.Session, error)
	CurrentSession(ctx context.Context, token string) (*domain.Session, error)
	Logout(ctx context.Context, token string) error
}
