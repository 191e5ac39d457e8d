package mongo

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/99minutos/decision-service/internal/core/ports"
	"github.com/99minutos/decision-service/internal/infrastructure/db/dbtest"
)

// Runs against a live server only when MONGO_TEST_URI is set.
func TestDecisionRepository_Contract(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx := context.Background()
	client, db, err := Connect(ctx, Config{URI: uri, Database: fmt.Sprintf("decisions_test_%d", time.Now().UnixNano())})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	dbtest.RunDecisionRepository(t, func(t *testing.T) ports.DecisionRepository {
		repo := NewDecisionRepository(db)
		_, err := repo.col.DeleteMany(ctx, map[string]any{})
		require.NoError(t, err)
		require.NoError(t, repo.EnsureIndexes(ctx))
		return repo
	})
}
