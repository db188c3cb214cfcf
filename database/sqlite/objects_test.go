package sqlite_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sagarc03/edgekit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedObject(t *testing.T, repo edgekit.ObjectRepo, key string) edgekit.ObjectInfo {
	t.Helper()

	info, err := repo.Upsert(context.Background(), edgekit.ObjectEntry{
		Key:         key,
		ContentType: "text/plain",
		Etag:        "etag-" + key,
		Size:        int64(len(key)),
	})
	require.NoError(t, err)
	return info
}

func TestObjectRepo_UpsertAndGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := setupTestDB(t).Objects()

	stored, err := repo.Upsert(ctx, edgekit.ObjectEntry{
		Key:            "uploads/report.pdf",
		ContentType:    "application/pdf",
		Etag:           "abc123",
		Size:           2048,
		CustomMetadata: map[string]string{"origin": "scanner"},
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, stored.ID)
	assert.Equal(t, "uploads/report.pdf", stored.Key)
	assert.Equal(t, "application/pdf", stored.ContentType)
	assert.Equal(t, "abc123", stored.Etag)
	assert.Equal(t, int64(2048), stored.Size)
	assert.Equal(t, map[string]string{"origin": "scanner"}, stored.CustomMetadata)
	assert.False(t, stored.UploadedAt.IsZero())

	got, err := repo.Get(ctx, "uploads/report.pdf")
	require.NoError(t, err)
	assert.Equal(t, stored, got)
}

func TestObjectRepo_Upsert_ReplacesExistingKey(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := setupTestDB(t).Objects()

	first := seedObject(t, repo, "uploads/file.txt")

	second, err := repo.Upsert(ctx, edgekit.ObjectEntry{
		Key:         "uploads/file.txt",
		ContentType: "text/html",
		Etag:        "new-etag",
		Size:        99,
	})
	require.NoError(t, err)

	// Replacing keeps the original row id but refreshes everything else.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "text/html", second.ContentType)
	assert.Equal(t, "new-etag", second.Etag)
	assert.Equal(t, int64(99), second.Size)
	assert.Nil(t, second.CustomMetadata)

	got, err := repo.Get(ctx, "uploads/file.txt")
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestObjectRepo_Get_NotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := setupTestDB(t).Objects()

	_, err := repo.Get(ctx, "missing.txt")
	assert.ErrorIs(t, err, edgekit.ErrNotFound)
}

func TestObjectRepo_Delete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := setupTestDB(t).Objects()

	seedObject(t, repo, "uploads/gone.txt")

	err := repo.Delete(ctx, "uploads/gone.txt")
	require.NoError(t, err)

	_, err = repo.Get(ctx, "uploads/gone.txt")
	assert.ErrorIs(t, err, edgekit.ErrNotFound)

	err = repo.Delete(ctx, "uploads/gone.txt")
	assert.ErrorIs(t, err, edgekit.ErrNotFound)
}

func TestObjectRepo_List_PrefixFilter(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := setupTestDB(t).Objects()

	seedObject(t, repo, "uploads/a.txt")
	seedObject(t, repo, "uploads/b.txt")
	seedObject(t, repo, "media/c.jpg")

	result, err := repo.List(ctx, edgekit.ListQuery{Prefix: "uploads/", Limit: 10})
	require.NoError(t, err)

	require.Len(t, result.Objects, 2)
	assert.False(t, result.Truncated)
	assert.Empty(t, result.Cursor)
	for _, o := range result.Objects {
		assert.Contains(t, o.Key, "uploads/")
	}
}

func TestObjectRepo_List_PrefixIsLiteral(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := setupTestDB(t).Objects()

	seedObject(t, repo, "100%done.txt")
	seedObject(t, repo, "100xdone.txt")

	result, err := repo.List(ctx, edgekit.ListQuery{Prefix: "100%", Limit: 10})
	require.NoError(t, err)

	require.Len(t, result.Objects, 1)
	assert.Equal(t, "100%done.txt", result.Objects[0].Key)
}

func TestObjectRepo_List_Pagination(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := setupTestDB(t).Objects()

	keys := []string{"page/a.txt", "page/b.txt", "page/c.txt"}
	for _, key := range keys {
		seedObject(t, repo, key)
	}

	// Walk the whole set one item per page. Each page must be disjoint
	// from the ones before it and the final page must not be truncated.
	seen := map[string]bool{}
	cursor := ""
	for i := 0; i < len(keys); i++ {
		result, err := repo.List(ctx, edgekit.ListQuery{Prefix: "page/", Limit: 1, Cursor: cursor})
		require.NoError(t, err)
		require.Len(t, result.Objects, 1)

		key := result.Objects[0].Key
		assert.False(t, seen[key], "key %s returned twice", key)
		seen[key] = true

		if i < len(keys)-1 {
			require.True(t, result.Truncated)
			require.NotEmpty(t, result.Cursor)
			cursor = result.Cursor
		} else {
			assert.False(t, result.Truncated)
			assert.Empty(t, result.Cursor)
		}
	}

	assert.Len(t, seen, len(keys))
}

func TestObjectRepo_List_InvalidCursor(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := setupTestDB(t).Objects()

	_, err := repo.List(ctx, edgekit.ListQuery{Limit: 10, Cursor: "!!not-a-cursor!!"})
	assert.Error(t, err)
}

func TestObjectRepo_List_Empty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := setupTestDB(t).Objects()

	result, err := repo.List(ctx, edgekit.ListQuery{Limit: 10})
	require.NoError(t, err)

	assert.NotNil(t, result.Objects)
	assert.Empty(t, result.Objects)
	assert.False(t, result.Truncated)
}
