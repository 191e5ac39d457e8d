package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/decision-service/internal/core/domain"
)

func TestSessionStore_SaveGetDelete(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	sess := &domain.Session{Token: "tok-1", Identifier: "Robert_Fripp", Role: domain.RoleAdmin}
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "Robert_Fripp", got.Identifier)
	assert.Equal(t, domain.RoleAdmin, got.Role)

	require.NoError(t, store.Delete(ctx, "tok-1"))
	_, err = store.Get(ctx, "tok-1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	// deleting again is fine
	assert.NoError(t, store.Delete(ctx, "tok-1"))
}

func TestSessionStore_UnknownToken(t *testing.T) {
	_, err := NewSessionStore().Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStore_ExpiredIsDropped(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, &domain.Session{Token: "tok", Role: domain.RoleNormal, ExpiresAt: now.Add(time.Minute)}))
	_, err := store.Get(ctx, "tok")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = store.Get(ctx, "tok")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.Equal(t, 0, store.Len())
}

func TestSessionStore_SaveSweepsAbandonedSessions(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, &domain.Session{Token: "abandoned-1", Role: domain.RoleAdmin, ExpiresAt: now.Add(time.Minute)}))
	require.NoError(t, store.Save(ctx, &domain.Session{Token: "abandoned-2", Role: domain.RoleNormal, ExpiresAt: now.Add(time.Minute)}))
	require.NoError(t, store.Save(ctx, &domain.Session{Token: "forever", Role: domain.RoleNormal}))
	require.Equal(t, 3, store.Len())

	now = now.Add(time.Hour)
	require.NoError(t, store.Save(ctx, &domain.Session{Token: "fresh", Role: domain.RoleAdmin, ExpiresAt: now.Add(time.Minute)}))

	assert.Equal(t, 2, store.Len())
	_, err := store.Get(ctx, "forever")
	assert.NoError(t, err)
	_, err = store.Get(ctx, "fresh")
	assert.NoError(t, err)
}
