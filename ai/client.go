// Package ai is a REST client for a Workers-AI-style inference endpoint.
// Text models answer chat messages; image models return raw PNG bytes.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultChatModel answers /api/chat requests that do not name a model.
	DefaultChatModel = "@cf/meta/llama-3.1-8b-instruct"

	// DefaultImageModel renders /api/generate-image prompts.
	DefaultImageModel = "@cf/stabilityai/stable-diffusion-xl-base-1.0"

	systemPrompt = "You are a helpful assistant. Keep answers concise."
)

// Config holds the connection settings for the inference endpoint.
type Config struct {
	// BaseURL is the inference API root, e.g.
	// https://api.cloudflare.com/client/v4/accounts/<id>.
	BaseURL string
	// Token is sent as a bearer token on every request.
	Token string
	// ChatModel overrides DefaultChatModel when set.
	ChatModel string
	// ImageModel overrides DefaultImageModel when set.
	ImageModel string
}

// Client calls the inference endpoint. The zero value is not usable;
// construct it with NewClient.
type Client struct {
	baseURL    string
	token      string
	chatModel  string
	imageModel string
	httpClient *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("new ai client: base url is required")
	}

	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = DefaultChatModel
	}

	imageModel := cfg.ImageModel
	if imageModel == "" {
		imageModel = DefaultImageModel
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		token:      cfg.Token,
		chatModel:  chatModel,
		imageModel: imageModel,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// ChatModel returns the model used when a request does not name one.
func (c *Client) ChatModel() string {
	return c.chatModel
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Result struct {
		Response string `json:"response"`
	} `json:"result"`
	Success bool `json:"success"`
	Errors  []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Chat sends message to a text model and returns the reply. An empty
// model falls back to the configured chat model.
func (c *Client) Chat(ctx context.Context, model, message string) (string, error) {
	if model == "" {
		model = c.chatModel
	}

	payload := chatRequest{Messages: []chatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: message},
	}}

	body, err := c.run(ctx, model, payload)
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("chat: decode response: %w", err)
	}

	if !parsed.Success {
		if len(parsed.Errors) > 0 {
			return "", fmt.Errorf("chat: inference failed: %s", parsed.Errors[0].Message)
		}
		return "", fmt.Errorf("chat: inference failed")
	}

	return parsed.Result.Response, nil
}

// GenerateImage renders prompt with the configured image model and
// returns the PNG bytes.
func (c *Client) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	body, err := c.run(ctx, c.imageModel, map[string]string{"prompt": prompt})
	if err != nil {
		return nil, fmt.Errorf("generate image: %w", err)
	}
	return body, nil
}

// run posts a JSON payload to {base}/ai/run/{model} and returns the raw
// response body. Text models answer JSON; image models answer binary.
func (c *Client) run(ctx context.Context, model string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	url := c.baseURL + "/ai/run/" + model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", model, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("call %s: unexpected status %d", model, resp.StatusCode)
	}

	return body, nil
}
