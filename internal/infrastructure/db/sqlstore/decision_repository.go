package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/99minutos/decision-service/internal/core/domain"
	"github.com/99minutos/decision-service/internal/core/ports"
)

const decisionColumns = "id, texto, resultado, exito, tipo"

type DecisionRepository struct {
	db *sqlx.DB
}

func NewDecisionRepository(db *sqlx.DB) *DecisionRepository {
	return &DecisionRepository{db: db}
}

type decisionRow struct {
	ID        string         `db:"id"`
	Text      string         `db:"texto"`
	Result    sql.NullString `db:"resultado"`
	Succeeded sql.NullBool   `db:"exito"`
	Role      string         `db:"tipo"`
}

func (row *decisionRow) toDomain() *domain.Decision {
	d := &domain.Decision{
		ID:   row.ID,
		Text: row.Text,
		Role: domain.Role(row.Role),
	}
	if row.Result.Valid {
		v := row.Result.String
		d.Result = &v
	}
	if row.Succeeded.Valid {
		v := row.Succeeded.Bool
		d.Succeeded = &v
	}
	return d
}

func (r *DecisionRepository) Create(ctx context.Context, in ports.NewDecision) (*domain.Decision, error) {
	d := &domain.Decision{
		ID:        uuid.NewString(),
		Text:      domain.NormalizeText(in.Text),
		Result:    in.Result,
		Succeeded: in.Succeeded,
		Role:      in.Role,
	}

	q := r.db.Rebind(`INSERT INTO decisiones (` + decisionColumns + `) VALUES (?, ?, ?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, q, d.ID, d.Text, d.Result, d.Succeeded, string(d.Role)); err != nil {
		return nil, fmt.Errorf("insert decision: %w", err)
	}
	return d, nil
}

func (r *DecisionRepository) ListByRole(ctx context.Context, role domain.Role) ([]*domain.Decision, error) {
	var rows []decisionRow
	q := r.db.Rebind(`SELECT ` + decisionColumns + ` FROM decisiones WHERE tipo = ? ORDER BY seq`)
	if err := r.db.SelectContext(ctx, &rows, q, string(role)); err != nil {
		return nil, fmt.Errorf("select decisions: %w", err)
	}

	out := make([]*domain.Decision, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

func (r *DecisionRepository) UpdateText(ctx context.Context, id string, role domain.Role, text string) (*domain.Decision, error) {
	return r.set(ctx, "texto", domain.NormalizeText(text), id, role)
}

func (r *DecisionRepository) UpdateResult(ctx context.Context, id string, role domain.Role, result string) (*domain.Decision, error) {
	return r.set(ctx, "resultado", result, id, role)
}

func (r *DecisionRepository) UpdateSucceeded(ctx context.Context, id string, role domain.Role, succeeded bool) (*domain.Decision, error) {
	return r.set(ctx, "exito", succeeded, id, role)
}

func (r *DecisionRepository) Delete(ctx context.Context, id string, role domain.Role) (int64, error) {
	where, args := scopeClause(id, role)
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM decisiones WHERE `+where), args...)
	if err != nil {
		return 0, fmt.Errorf("delete decision: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete decision: rows affected: %w", err)
	}
	return n, nil
}

// Ping reports whether the database answers.
func (r *DecisionRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// set updates one column and returns the updated row. column is always one
// of the fixed names above, never caller input.
func (r *DecisionRepository) set(ctx context.Context, column string, value any, id string, role domain.Role) (*domain.Decision, error) {
	where, args := scopeClause(id, role)
	q := r.db.Rebind(`UPDATE decisiones SET ` + column + ` = ? WHERE ` + where + ` RETURNING ` + decisionColumns)

	var row decisionRow
	if err := r.db.QueryRowxContext(ctx, q, append([]any{value}, args...)...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDecisionNotFound
		}
		return nil, fmt.Errorf("update decision %s: %w", column, err)
	}
	return row.toDomain(), nil
}

// scopeClause matches by id and, when role is non-empty, additionally by role.
func scopeClause(id string, role domain.Role) (string, []any) {
	if role == "" {
		return "id = ?", []any{id}
	}
	return "id = ? AND tipo = ?", []any{id, string(role)}
}
