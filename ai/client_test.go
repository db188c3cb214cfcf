package ai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sagarc03/edgekit/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_RequiresBaseURL(t *testing.T) {
	t.Parallel()

	_, err := ai.NewClient(ai.Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base url")
}

func TestClient_Chat(t *testing.T) {
	t.Parallel()

	var gotPath, gotAuth string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"result":  map[string]string{"response": "hello there"},
			"success": true,
		})
	}))
	defer server.Close()

	client, err := ai.NewClient(ai.Config{BaseURL: server.URL, Token: "secret"})
	require.NoError(t, err)

	reply, err := client.Chat(context.Background(), "", "hi")
	require.NoError(t, err)

	assert.Equal(t, "hello there", reply)
	assert.Equal(t, "/ai/run/"+ai.DefaultChatModel, gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)

	messages, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)

	system := messages[0].(map[string]any)
	assert.Equal(t, "system", system["role"])
	user := messages[1].(map[string]any)
	assert.Equal(t, "user", user["role"])
	assert.Equal(t, "hi", user["content"])
}

func TestClient_Chat_ExplicitModel(t *testing.T) {
	t.Parallel()

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]any{
			"result":  map[string]string{"response": "ok"},
			"success": true,
		})
	}))
	defer server.Close()

	client, err := ai.NewClient(ai.Config{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Chat(context.Background(), "@cf/custom/model", "hi")
	require.NoError(t, err)
	assert.Equal(t, "/ai/run/@cf/custom/model", gotPath)
}

func TestClient_Chat_InferenceFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"errors":  []map[string]string{{"message": "model overloaded"}},
		})
	}))
	defer server.Close()

	client, err := ai.NewClient(ai.Config{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Chat(context.Background(), "", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestClient_Chat_UpstreamError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := ai.NewClient(ai.Config{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Chat(context.Background(), "", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 502")
}

func TestClient_GenerateImage(t *testing.T) {
	t.Parallel()

	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n'}

	var gotPath string
	var gotBody map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	}))
	defer server.Close()

	client, err := ai.NewClient(ai.Config{BaseURL: server.URL})
	require.NoError(t, err)

	got, err := client.GenerateImage(context.Background(), "a lighthouse at dusk")
	require.NoError(t, err)

	assert.Equal(t, png, got)
	assert.Equal(t, "/ai/run/"+ai.DefaultImageModel, gotPath)
	assert.Equal(t, "a lighthouse at dusk", gotBody["prompt"])
}
