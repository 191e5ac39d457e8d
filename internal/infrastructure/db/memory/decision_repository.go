// Package memory provides process-local implementations of the decision and
// session stores. State is lost on restart.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/99minutos/decision-service/internal/core/domain"
	"github.com/99minutos/decision-service/internal/core/ports"
)

// DecisionRepository keeps decisions in insertion order behind a RWMutex.
type DecisionRepository struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]*domain.Decision
}

func NewDecisionRepository() *DecisionRepository {
	return &DecisionRepository{byID: make(map[string]*domain.Decision)}
}

func (r *DecisionRepository) Create(_ context.Context, in ports.NewDecision) (*domain.Decision, error) {
	d := &domain.Decision{
		ID:        uuid.NewString(),
		Text:      domain.NormalizeText(in.Text),
		Result:    cloneString(in.Result),
		Succeeded: cloneBool(in.Succeeded),
		Role:      in.Role,
	}

	r.mu.Lock()
	r.byID[d.ID] = d
	r.order = append(r.order, d.ID)
	r.mu.Unlock()

	return clone(d), nil
}

func (r *DecisionRepository) ListByRole(_ context.Context, role domain.Role) ([]*domain.Decision, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Decision, 0)
	for _, id := range r.order {
		if d := r.byID[id]; d != nil && d.Role == role {
			out = append(out, clone(d))
		}
	}
	return out, nil
}

func (r *DecisionRepository) UpdateText(_ context.Context, id string, role domain.Role, text string) (*domain.Decision, error) {
	return r.update(id, role, func(d *domain.Decision) { d.Text = domain.NormalizeText(text) })
}

func (r *DecisionRepository) UpdateResult(_ context.Context, id string, role domain.Role, result string) (*domain.Decision, error) {
	return r.update(id, role, func(d *domain.Decision) { d.Result = &result })
}

func (r *DecisionRepository) UpdateSucceeded(_ context.Context, id string, role domain.Role, succeeded bool) (*domain.Decision, error) {
	return r.update(id, role, func(d *domain.Decision) { d.Succeeded = &succeeded })
}

func (r *DecisionRepository) Delete(_ context.Context, id string, role domain.Role) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.byID[id]
	if !ok || (role != "" && d.Role != role) {
		return 0, nil
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return 1, nil
}

func (r *DecisionRepository) update(id string, role domain.Role, apply func(*domain.Decision)) (*domain.Decision, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.byID[id]
	if !ok || (role != "" && d.Role != role) {
		return nil, domain.ErrDecisionNotFound
	}
	apply(d)
	return clone(d), nil
}

func clone(d *domain.Decision) *domain.Decision {
	c := *d
	c.Result = cloneString(d.Result)
	c.Succeeded = cloneBool(d.Succeeded)
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}
