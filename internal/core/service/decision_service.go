package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/decision-service/internal/core/domain"
	"github.com/99minutos/decision-service/internal/core/ports"
)

type DecisionService struct {
	repo   ports.DecisionRepository
	logger zerolog.Logger
}

func NewDecisionService(repo ports.DecisionRepository, logger zerolog.Logger) *DecisionService {
	return &DecisionService{repo: repo, logger: logger}
}

// List returns the decisions visible to role.
func (s *DecisionService) List(ctx context.Context, role domain.Role) ([]*domain.Decision, error) {
	decisions, err := s.repo.ListByRole(ctx, role)
	if err != nil {
		return nil, s.storeErr("list decisions", err)
	}
	if decisions == nil {
		decisions = []*domain.Decision{}
	}
	return decisions, nil
}

// Create stores a new decision owned by input.Role.
func (s *DecisionService) Create(ctx context.Context, input ports.CreateDecisionInput) (*domain.Decision, error) {
	text := domain.NormalizeText(input.Text)
	if text == "" {
		return nil, domain.ErrInvalidText
	}

	d, err := s.repo.Create(ctx, ports.NewDecision{
		Text:      text,
		Result:    input.Result,
		Succeeded: input.Succeeded,
		Role:      input.Role,
	})
	if err != nil {
		return nil, s.storeErr("create decision", err)
	}

	s.logger.Info().Str("id", d.ID).Str("tipo", string(d.Role)).Msg("decision created")
	return d, nil
}

func (s *DecisionService) UpdateText(ctx context.Context, id string, role domain.Role, text string) (*domain.Decision, error) {
	text = domain.NormalizeText(text)
	if text == "" {
		return nil, domain.ErrInvalidText
	}
	d, err := s.repo.UpdateText(ctx, id, role, text)
	return s.updated("update text", id, d, err)
}

func (s *DecisionService) UpdateResult(ctx context.Context, id string, role domain.Role, result string) (*domain.Decision, error) {
	if result == "" {
		return nil, domain.ErrInvalidResult
	}
	d, err := s.repo.UpdateResult(ctx, id, role, result)
	return s.updated("update result", id, d, err)
}

func (s *DecisionService) UpdateSucceeded(ctx context.Context, id string, role domain.Role, succeeded bool) (*domain.Decision, error) {
	d, err := s.repo.UpdateSucceeded(ctx, id, role, succeeded)
	return s.updated("update succeeded", id, d, err)
}

// Delete reports whether a decision was removed. A second delete of the same
// id reports false.
func (s *DecisionService) Delete(ctx context.Context, id string, role domain.Role) (bool, error) {
	n, err := s.repo.Delete(ctx, id, role)
	if err != nil {
		return false, s.storeErr("delete decision", err)
	}
	if n > 0 {
		s.logger.Info().Str("id", id).Msg("decision deleted")
	}
	return n > 0, nil
}

func (s *DecisionService) updated(op, id string, d *domain.Decision, err error) (*domain.Decision, error) {
	if err != nil {
		if errors.Is(err, domain.ErrDecisionNotFound) {
			return nil, domain.ErrDecisionNotFound
		}
		return nil, s.storeErr(op, err)
	}
	s.logger.Debug().Str("id", id).Str("op", op).Msg("decision updated")
	return d, nil
}

// storeErr logs a backend failure and marks it as ErrStoreFailure so the
// transport layer never leaks the raw cause.
func (s *DecisionService) storeErr(op string, err error) error {
	s.logger.Error().Err(err).Str("op", op).Msg("decision store failure")
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreFailure, err)
}
