package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sagarc03/edgekit"
)

// TodoAPI serves the /todos resource.
type TodoAPI struct {
	service *edgekit.TodoService
}

func todoID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

func (a *TodoAPI) handleList(w http.ResponseWriter, r *http.Request) {
	todos, err := a.service.List(r.Context())
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, todos)
}

func (a *TodoAPI) handleCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	todo, err := a.service.Create(r.Context(), body.Title)
	if err != nil {
		if errors.Is(err, edgekit.ErrInvalidInput) {
			WriteError(w, http.StatusBadRequest, "Title is required")
			return
		}
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusCreated, todo)
}

func (a *TodoAPI) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := todoID(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid todo id")
		return
	}

	todo, err := a.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, edgekit.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Todo not found")
			return
		}
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, todo)
}

func (a *TodoAPI) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := todoID(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid todo id")
		return
	}

	var patch edgekit.TodoPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	todo, err := a.service.Update(r.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, edgekit.ErrNotFound):
			WriteError(w, http.StatusNotFound, "Todo not found")
		case errors.Is(err, edgekit.ErrInvalidInput):
			WriteError(w, http.StatusBadRequest, "Title is required")
		default:
			HandleError(w, err)
		}
		return
	}

	_ = WriteJSON(w, http.StatusOK, todo)
}

func (a *TodoAPI) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := todoID(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid todo id")
		return
	}

	if err := a.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, edgekit.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Todo not found")
			return
		}
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Todo deleted",
	})
}
