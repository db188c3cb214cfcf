package postgres_test

import (
	"context"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sagarc03/edgekit/database/postgres"
	"github.com/stretchr/testify/require"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
)

var (
	testDSN     string
	testDSNOnce sync.Once
	testDSNErr  error
)

// sharedTestDSN starts one postgres container for the whole package and
// returns its connection string. The testcontainers reaper collects the
// container when the test process exits. Tests share the container and
// isolate themselves by truncating tables, so they must not be parallel.
func sharedTestDSN(t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	testDSNOnce.Do(func() {
		ctx := context.Background()

		pgContainer, err := pgcontainer.Run(ctx,
			"postgres:18-alpine",
			pgcontainer.WithDatabase("testdb"),
			pgcontainer.WithUsername("testuser"),
			pgcontainer.WithPassword("testpass"),
			pgcontainer.BasicWaitStrategies(),
		)
		if err != nil {
			testDSNErr = err
			return
		}

		testDSN, testDSNErr = pgContainer.ConnectionString(ctx, "sslmode=disable")
	})

	require.NoError(t, testDSNErr, "failed to start postgres container")
	return testDSN
}

// setupTestDB connects to the shared container, migrates, and truncates
// all tables so the test starts clean.
func setupTestDB(t *testing.T) *postgres.DB {
	t.Helper()

	ctx := context.Background()
	dsn := sharedTestDSN(t)

	db, err := postgres.Connect(ctx, dsn)
	require.NoError(t, err, "failed to connect")
	t.Cleanup(func() { _ = db.Close() })

	err = db.Migrate(ctx)
	require.NoError(t, err, "failed to migrate")

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	_, err = pool.Exec(ctx, "TRUNCATE objects, todos, photos RESTART IDENTITY")
	require.NoError(t, err, "failed to truncate")

	return db
}
