package http

import (
	"encoding/json"
	"net/http"
	"strings"
)

// AIAPI proxies chat and image generation to the inference backend.
type AIAPI struct {
	client Inference
}

func (a *AIAPI) handleChat(w http.ResponseWriter, r *http.Request) {
	if a.client == nil {
		WriteError(w, http.StatusServiceUnavailable, "AI backend not configured")
		return
	}

	var body struct {
		Message string `json:"message"`
		Model   string `json:"model"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if strings.TrimSpace(body.Message) == "" {
		WriteError(w, http.StatusBadRequest, "Message is required")
		return
	}

	model := body.Model
	if model == "" {
		model = a.client.ChatModel()
	}

	reply, err := a.client.Chat(r.Context(), model, body.Message)
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, map[string]any{
		"reply": reply,
		"model": model,
	})
}

func (a *AIAPI) handleGenerateImage(w http.ResponseWriter, r *http.Request) {
	if a.client == nil {
		WriteError(w, http.StatusServiceUnavailable, "AI backend not configured")
		return
	}

	var body struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if strings.TrimSpace(body.Prompt) == "" {
		WriteError(w, http.StatusBadRequest, "Prompt is required")
		return
	}

	image, err := a.client.GenerateImage(r.Context(), body.Prompt)
	if err != nil {
		HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(image)
}
