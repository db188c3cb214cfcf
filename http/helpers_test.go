package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/sagarc03/edgekit"
	"github.com/sagarc03/edgekit/database/sqlite"
	"github.com/sagarc03/edgekit/filesystem"
	edgehttp "github.com/sagarc03/edgekit/http"
	"github.com/stretchr/testify/require"
)

// stubInference is a canned Inference backend for handler tests.
type stubInference struct {
	reply    string
	image    []byte
	err      error
	gotModel string
}

func (s *stubInference) Chat(_ context.Context, model, _ string) (string, error) {
	s.gotModel = model
	return s.reply, s.err
}

func (s *stubInference) GenerateImage(context.Context, string) ([]byte, error) {
	return s.image, s.err
}

func (s *stubInference) ChatModel() string { return "test-chat-model" }

type testServer struct {
	*httptest.Server
	ai *stubInference
}

// setupServer runs the full stack over an in-memory database and a
// temp-dir blob store.
func setupServer(t *testing.T) *testServer {
	t.Helper()

	ctx := context.Background()

	db, err := sqlite.Connect(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Migrate(ctx))

	root, err := os.OpenRoot(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = root.Close() })

	bucket := edgekit.NewBucket(db.Objects(), filesystem.NewStore(root), edgekit.BucketConfig{})

	aiStub := &stubInference{reply: "stub reply", image: []byte("png-bytes")}

	handler := edgehttp.NewHandler(
		edgehttp.HandlerConfig{MaxUploadSize: 1 << 20},
		edgehttp.Deps{
			Todos:  edgekit.NewTodoService(db.Todos()),
			Bucket: bucket,
			Media:  edgekit.NewMediaService(bucket, db.Media()),
			AI:     aiStub,
		},
	)

	server := httptest.NewServer(handler.Router())
	t.Cleanup(server.Close)

	return &testServer{Server: server, ai: aiStub}
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, into any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(into))
}

// multipartBody builds a multipart form with one file field plus extra
// string fields.
func multipartBody(t *testing.T, fieldName, filename string, content []byte, fields map[string]string) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile(fieldName, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)

	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}

	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func uploadMultipart(t *testing.T, server *testServer, path, filename string, content []byte, fields map[string]string) *http.Response {
	t.Helper()

	body, contentType := multipartBody(t, "file", filename, content, fields)

	resp, err := http.Post(server.URL+path, contentType, body)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func createTodo(t *testing.T, server *testServer, title string) edgekit.Todo {
	t.Helper()

	resp := doJSON(t, http.MethodPost, server.URL+"/todos", map[string]string{"title": title})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var todo edgekit.Todo
	decodeJSON(t, resp, &todo)
	return todo
}
