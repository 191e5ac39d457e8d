package ports

import (
	"context"

	"github.com/99minutos/decision-service/internal/core/domain"
)

// NewDecision carries the fields of a decision about to be created.
type NewDecision struct {
	Text      string
	Result    *string
	Succeeded *bool
	Role      domain.Role
}

// DecisionRepository defines persistence operations for decisions.
//
// The update and delete operations take a role scope: when role is non-empty
// the record must also belong to that role, otherwise it is treated as absent.
type DecisionRepository interface {
	// Create assigns a fresh id, stores the trimmed text and returns the stored record.
	Create(ctx context.Context, in NewDecision) (*domain.Decision, error)
	// ListByRole returns every decision of role in storage order.
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.Decision, error)
	// UpdateText, UpdateResult and UpdateSucceeded return domain.ErrDecisionNotFound
	// when no record matches.
	UpdateText(ctx context.Context, id string, role domain.Role, text string) (*domain.Decision, error)
	UpdateResult(ctx context.Context, id string, role domain.Role, result string) (*domain.Decision, error)
	UpdateSucceeded(ctx context.Context, id string, role domain.Role, succeeded bool) (*domain.Decision, error)
	// Delete returns the number of records removed (0 or 1).
	Delete(ctx context.Context, id string, role domain.Role) (int64, error)
}
