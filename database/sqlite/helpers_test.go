package sqlite_test

import (
	"context"
	"testing"

	"github.com/sagarc03/edgekit/database/sqlite"
	"github.com/stretchr/testify/require"
)

// setupTestDB connects an in-memory database and runs migrations.
func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()

	ctx := context.Background()

	db, err := sqlite.Connect(ctx, ":memory:")
	require.NoError(t, err, "failed to connect")

	err = db.Migrate(ctx)
	require.NoError(t, err, "failed to migrate")

	t.Cleanup(func() { _ = db.Close() })

	return db
}
