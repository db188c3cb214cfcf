package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sagarc03/edgekit"
)

// ErrorResponse is the single-field JSON error envelope every failing
// endpoint answers with.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteError writes a JSON error response.
func WriteError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// HandleError writes the response for an error the handler has no more
// specific message for.
func HandleError(w http.ResponseWriter, err error) {
	slog.Error("request error", "error", err)

	switch {
	case errors.Is(err, edgekit.ErrNotFound):
		WriteError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, edgekit.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, edgekit.ErrTooLarge):
		WriteError(w, http.StatusBadRequest, "File too large")
	default:
		WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, code int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(data)
}
