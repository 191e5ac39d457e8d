// Package dbtest holds the behavioural contract every DecisionRepository
// implementation must satisfy. Backend packages call RunDecisionRepository
// from their own tests.
package dbtest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/decision-service/internal/core/domain"
	"github.com/99minutos/decision-service/internal/core/ports"
)

// RunDecisionRepository runs the contract against repositories built by
// newRepo. Each subtest gets a fresh, empty repository.
func RunDecisionRepository(t *testing.T, newRepo func(t *testing.T) ports.DecisionRepository) {
	t.Helper()

	t.Run("create assigns id and trims text", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		d, err := repo.Create(ctx, ports.NewDecision{Text: "  buy milk  ", Role: domain.RoleNormal})
		require.NoError(t, err)
		assert.NotEmpty(t, d.ID)
		assert.Equal(t, "buy milk", d.Text)
		assert.Equal(t, domain.RoleNormal, d.Role)
		assert.Nil(t, d.Result)
		assert.Nil(t, d.Succeeded)
	})

	t.Run("create keeps optional fields", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		result, ok := "shipped", true

		d, err := repo.Create(ctx, ports.NewDecision{Text: "Ship v2", Result: &result, Succeeded: &ok, Role: domain.RoleAdmin})
		require.NoError(t, err)
		require.NotNil(t, d.Result)
		require.NotNil(t, d.Succeeded)
		assert.Equal(t, "shipped", *d.Result)
		assert.True(t, *d.Succeeded)
	})

	t.Run("ids are unique", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		a, err := repo.Create(ctx, ports.NewDecision{Text: "a", Role: domain.RoleAdmin})
		require.NoError(t, err)
		b, err := repo.Create(ctx, ports.NewDecision{Text: "b", Role: domain.RoleAdmin})
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("list is role scoped and ordered", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first, err := repo.Create(ctx, ports.NewDecision{Text: "first", Role: domain.RoleAdmin})
		require.NoError(t, err)
		_, err = repo.Create(ctx, ports.NewDecision{Text: "other", Role: domain.RoleNormal})
		require.NoError(t, err)
		second, err := repo.Create(ctx, ports.NewDecision{Text: "second", Role: domain.RoleAdmin})
		require.NoError(t, err)

		admin, err := repo.ListByRole(ctx, domain.RoleAdmin)
		require.NoError(t, err)
		require.Len(t, admin, 2)
		assert.Equal(t, first.ID, admin[0].ID)
		assert.Equal(t, second.ID, admin[1].ID)

		normal, err := repo.ListByRole(ctx, domain.RoleNormal)
		require.NoError(t, err)
		require.Len(t, normal, 1)
		assert.Equal(t, "other", normal[0].Text)
	})

	t.Run("list of empty role", func(t *testing.T) {
		repo := newRepo(t)

		got, err := repo.ListByRole(context.Background(), domain.RoleAdmin)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("field updates are independent", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		d, err := repo.Create(ctx, ports.NewDecision{Text: "Hire Tony", Role: domain.RoleAdmin})
		require.NoError(t, err)

		got, err := repo.UpdateResult(ctx, d.ID, "", "went well")
		require.NoError(t, err)
		require.NotNil(t, got.Result)
		assert.Equal(t, "went well", *got.Result)
		assert.Nil(t, got.Succeeded)

		_, err = repo.UpdateSucceeded(ctx, d.ID, "", true)
		require.NoError(t, err)
		got, err = repo.UpdateSucceeded(ctx, d.ID, "", false)
		require.NoError(t, err)
		require.NotNil(t, got.Succeeded)
		assert.False(t, *got.Succeeded)
		assert.Equal(t, "Hire Tony", got.Text)
		assert.Equal(t, "went well", *got.Result)

		got, err = repo.UpdateText(ctx, d.ID, domain.RoleAdmin, "Hire Tony Levin")
		require.NoError(t, err)
		assert.Equal(t, "Hire Tony Levin", got.Text)
		assert.Equal(t, "went well", *got.Result)
		assert.False(t, *got.Succeeded)
		assert.Equal(t, domain.RoleAdmin, got.Role)
	})

	t.Run("update unknown id", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.UpdateText(ctx, "missing", "", "x")
		assert.True(t, errors.Is(err, domain.ErrDecisionNotFound), "got %v", err)
		_, err = repo.UpdateResult(ctx, "missing", "", "x")
		assert.True(t, errors.Is(err, domain.ErrDecisionNotFound), "got %v", err)
		_, err = repo.UpdateSucceeded(ctx, "missing", "", true)
		assert.True(t, errors.Is(err, domain.ErrDecisionNotFound), "got %v", err)
	})

	t.Run("update respects role scope", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		d, err := repo.Create(ctx, ports.NewDecision{Text: "admin only", Role: domain.RoleAdmin})
		require.NoError(t, err)

		_, err = repo.UpdateText(ctx, d.ID, domain.RoleNormal, "hijacked")
		assert.True(t, errors.Is(err, domain.ErrDecisionNotFound), "got %v", err)

		admin, err := repo.ListByRole(ctx, domain.RoleAdmin)
		require.NoError(t, err)
		require.Len(t, admin, 1)
		assert.Equal(t, "admin only", admin[0].Text)
	})

	t.Run("delete counts removals", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		d, err := repo.Create(ctx, ports.NewDecision{Text: "temp", Role: domain.RoleNormal})
		require.NoError(t, err)

		n, err := repo.Delete(ctx, d.ID, domain.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, int64(0), n, "foreign role must not delete")

		n, err = repo.Delete(ctx, d.ID, domain.RoleNormal)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		n, err = repo.Delete(ctx, d.ID, domain.RoleNormal)
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)

		list, err := repo.ListByRole(ctx, domain.RoleNormal)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}
