package ports

import (
	"context"

	"github.com/99minutos/decision-service/internal/core/domain"
)

// CreateDecisionInput is the DTO passed from the transport layer to DecisionService.
type CreateDecisionInput struct {
	Text      string
	Result    *string
	Succeeded *bool
	Role      domain.Role
}

// DecisionService defines the use-case operations on decisions. Every
// operation is scoped to the caller's role.
type DecisionService interface {
	List(ctx context.Context, role domain.Role) ([]*domain.Decision, error)
	Create(ctx context.Context, input CreateDecisionInput) (*domain.Decision, error)
	UpdateText(ctx context.Context, id string, role domain.Role, text string) (*domain.Decision, error)
	UpdateResult(ctx context.Context, id string, role domain.Role, result string) (*domain.Decision, error)
	UpdateSucceeded(ctx context.Context, id string, role domain.Role, succeeded bool) (*domain.Decision, error)
	// Delete reports whether a record was removed.
	Delete(ctx context.Context, id string, role domain.Role) (bool, error)
}
