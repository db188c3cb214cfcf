package database_test

import (
	"context"
	"testing"

	"github.com/sagarc03/edgekit"
	"github.com/sagarc03/edgekit/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_SQLite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repos, cleanup, err := database.Connect(ctx, database.Config{Type: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(cleanup)

	require.NotNil(t, repos.Objects)
	require.NotNil(t, repos.Todos)
	require.NotNil(t, repos.Media)

	// Migrations ran: all three repos answer queries.
	_, err = repos.Objects.List(ctx, edgekit.ListQuery{Limit: 1})
	assert.NoError(t, err)

	_, err = repos.Todos.List(ctx)
	assert.NoError(t, err)

	_, err = repos.Media.List(ctx)
	assert.NoError(t, err)
}

func TestConnect_InvalidType(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	_, _, err := database.Connect(ctx, database.Config{Type: "invalid", DSN: "whatever"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database type")
}

func TestConnect_EmptyType(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	_, _, err := database.Connect(ctx, database.Config{Type: "", DSN: ":memory:"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database type")
}
