package http

import (
	"net/http"
	"strconv"
)

const (
	serviceName    = "edgekit"
	serviceVersion = "1.0.0"
)

// handleCatalog answers the root path with a machine-readable endpoint
// catalog, including the configured upload limit.
func (h *Handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	_ = WriteJSON(w, http.StatusOK, map[string]any{
		"name":    serviceName,
		"version": serviceVersion,
		"endpoints": map[string]string{
			"GET /todos":               "List todos",
			"POST /todos":              "Create a todo",
			"GET /todos/{id}":          "Get a todo",
			"PUT /todos/{id}":          "Update a todo",
			"DELETE /todos/{id}":       "Delete a todo",
			"POST /upload":             "Upload a file (multipart or raw body)",
			"GET /files":               "List files (prefix, limit, cursor)",
			"GET /files/{key}":         "Download a file (range and conditional requests)",
			"HEAD /files/{key}":        "File metadata headers",
			"DELETE /files/{key}":      "Delete a file",
			"POST /api/upload":         "Upload media with an optional caption",
			"GET /api/media":           "List media",
			"POST /api/delete/{name}":  "Delete media",
			"GET /media/{name}":        "Download media",
			"POST /api/chat":           "Chat with the configured text model",
			"POST /api/generate-image": "Generate a PNG from a prompt",
		},
		"limits": map[string]string{
			"maxUploadSize": strconv.FormatInt(h.config.MaxUploadSize, 10),
		},
	})
}
