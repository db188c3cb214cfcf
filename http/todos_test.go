package http_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/sagarc03/edgekit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodos_RoundTrip(t *testing.T) {
	t.Parallel()
	server := setupServer(t)

	created := createTodo(t, server, "buy milk")
	assert.Equal(t, "buy milk", created.Title)
	assert.False(t, created.Completed)
	assert.Positive(t, created.ID)

	resp := doJSON(t, http.MethodGet, fmt.Sprintf("%s/todos/%d", server.URL, created.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got edgekit.Todo
	decodeJSON(t, resp, &got)
	assert.Equal(t, created, got)

	resp = doJSON(t, http.MethodGet, server.URL+"/todos", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var todos []edgekit.Todo
	decodeJSON(t, resp, &todos)
	require.Len(t, todos, 1)
	assert.Equal(t, created.ID, todos[0].ID)
}

func TestTodos_Create_BlankTitle(t *testing.T) {
	t.Parallel()
	server := setupServer(t)

	for _, title := range []string{"", "   ", "\t\n"} {
		resp := doJSON(t, http.MethodPost, server.URL+"/todos", map[string]string{"title": title})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body map[string]string
		decodeJSON(t, resp, &body)
		assert.Equal(t, "Title is required", body["error"])
	}

	// Nothing was stored.
	resp := doJSON(t, http.MethodGet, server.URL+"/todos", nil)
	var todos []edgekit.Todo
	decodeJSON(t, resp, &todos)
	assert.Empty(t, todos)
}

func TestTodos_Create_TrimsTitle(t *testing.T) {
	t.Parallel()
	server := setupServer(t)

	created := createTodo(t, server, "  padded  ")
	assert.Equal(t, "padded", created.Title)
}

func TestTodos_PartialUpdate_PreservesUnsetFields(t *testing.T) {
	t.Parallel()
	server := setupServer(t)

	created := createTodo(t, server, "original")
	url := fmt.Sprintf("%s/todos/%d", server.URL, created.ID)

	// Only completed: title untouched.
	resp := doJSON(t, http.MethodPut, url, map[string]any{"completed": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated edgekit.Todo
	decodeJSON(t, resp, &updated)
	assert.Equal(t, "original", updated.Title)
	assert.True(t, updated.Completed)

	// Only title: completed untouched.
	resp = doJSON(t, http.MethodPut, url, map[string]any{"title": "renamed"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	decodeJSON(t, resp, &updated)
	assert.Equal(t, "renamed", updated.Title)
	assert.True(t, updated.Completed)
}

func TestTodos_Update_EmptyPatchReturnsRowUnchanged(t *testing.T) {
	t.Parallel()
	server := setupServer(t)

	created := createTodo(t, server, "unchanged")

	resp := doJSON(t, http.MethodPut, fmt.Sprintf("%s/todos/%d", server.URL, created.ID), map[string]any{})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got edgekit.Todo
	decodeJSON(t, resp, &got)
	assert.Equal(t, created, got)
}

func TestTodos_Update_BlankTitleRejected(t *testing.T) {
	t.Parallel()
	server := setupServer(t)

	created := createTodo(t, server, "keep me")

	resp := doJSON(t, http.MethodPut, fmt.Sprintf("%s/todos/%d", server.URL, created.ID), map[string]any{"title": "   "})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// The row kept its title.
	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/todos/%d", server.URL, created.ID), nil)
	var got edgekit.Todo
	decodeJSON(t, resp, &got)
	assert.Equal(t, "keep me", got.Title)
}

func TestTodos_NotFound(t *testing.T) {
	t.Parallel()
	server := setupServer(t)

	for _, tc := range []struct {
		method string
		body   any
	}{
		{http.MethodGet, nil},
		{http.MethodPut, map[string]any{"completed": true}},
		{http.MethodDelete, nil},
	} {
		resp := doJSON(t, tc.method, server.URL+"/todos/9999", tc.body)
		require.Equal(t, http.StatusNotFound, resp.StatusCode, tc.method)

		var body map[string]string
		decodeJSON(t, resp, &body)
		assert.Equal(t, "Todo not found", body["error"])
	}
}

func TestTodos_Delete(t *testing.T) {
	t.Parallel()
	server := setupServer(t)

	created := createTodo(t, server, "short lived")
	url := fmt.Sprintf("%s/todos/%d", server.URL, created.ID)

	resp := doJSON(t, http.MethodDelete, url, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	decodeJSON(t, resp, &body)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Todo deleted", body["message"])

	// Deleting again is a clean 404, not an error masked as success.
	resp = doJSON(t, http.MethodDelete, url, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTodos_InvalidID(t *testing.T) {
	t.Parallel()
	server := setupServer(t)

	resp := doJSON(t, http.MethodGet, server.URL+"/todos/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
