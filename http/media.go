package http

import (
	"errors"
	"net/http"

	"github.com/sagarc03/edgekit"
)

// MediaAPI serves the /api media resource and /media downloads.
type MediaAPI struct {
	service *edgekit.MediaService
}

func (a *MediaAPI) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "No file")
		return
	}
	defer func() { _ = file.Close() }()

	caption := r.FormValue("caption")
	contentType := header.Header.Get("Content-Type")

	key, err := a.service.Create(r.Context(), header.Filename, caption, contentType, file)
	if err != nil {
		if errors.Is(err, edgekit.ErrInvalidInput) {
			WriteError(w, http.StatusBadRequest, "Invalid filename")
			return
		}
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"filename": key,
	})
}

func (a *MediaAPI) handleList(w http.ResponseWriter, r *http.Request) {
	entries, err := a.service.List(r.Context())
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, entries)
}

func (a *MediaAPI) handleDelete(w http.ResponseWriter, r *http.Request) {
	filename := fileKey(r, "/api/delete/")
	if filename == "" {
		WriteError(w, http.StatusBadRequest, "Invalid filename")
		return
	}

	if err := a.service.Delete(r.Context(), filename); err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (a *MediaAPI) handleDownload(w http.ResponseWriter, r *http.Request) {
	filename := fileKey(r, "/media/")
	if filename == "" {
		WriteError(w, http.StatusNotFound, "Media not found")
		return
	}

	info, content, err := a.service.Open(r.Context(), filename)
	if err != nil {
		if errors.Is(err, edgekit.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Media not found")
			return
		}
		HandleError(w, err)
		return
	}
	defer func() { _ = content.Close() }()

	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("ETag", `"`+info.Etag+`"`)
	w.Header().Set("Content-Type", contentType)

	http.ServeContent(w, r, filename, info.UploadedAt, content)
}
