package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/sagarc03/edgekit"
)

// FileAPI serves the /upload and /files resource.
type FileAPI struct {
	bucket        *edgekit.Bucket
	maxUploadSize int64
}

// fileListResponse is one page of uploads.
type fileListResponse struct {
	Files     []edgekit.ObjectInfo `json:"files"`
	Truncated bool                 `json:"truncated"`
	Cursor    string               `json:"cursor,omitempty"`
}

// customMetadata parses the optional X-Custom-Metadata header, a JSON
// object of string pairs.
func customMetadata(r *http.Request) (map[string]string, error) {
	raw := r.Header.Get("X-Custom-Metadata")
	if raw == "" {
		return nil, nil
	}

	var meta map[string]string
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return nil, err
	}
	return meta, nil
}

// handleUpload accepts either a multipart form with a "file" field or a
// raw request body with a ?filename= query parameter. Only the
// multipart path enforces the size limit; raw uploads are uncapped.
func (a *FileAPI) handleUpload(w http.ResponseWriter, r *http.Request) {
	meta, err := customMetadata(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid X-Custom-Metadata header")
		return
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		a.handleMultipartUpload(w, r, meta)
		return
	}

	a.handleRawUpload(w, r, meta)
}

func (a *FileAPI) handleMultipartUpload(w http.ResponseWriter, r *http.Request, meta map[string]string) {
	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer func() { _ = file.Close() }()

	if header.Size > a.maxUploadSize {
		WriteError(w, http.StatusBadRequest, "File too large")
		return
	}

	obj := edgekit.PutObject{
		Key:            edgekit.UploadKey(header.Filename),
		ContentType:    header.Header.Get("Content-Type"),
		CustomMetadata: meta,
	}

	info, err := a.bucket.Put(r.Context(), obj, file)
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusCreated, map[string]any{
		"success":      true,
		"key":          info.Key,
		"originalName": header.Filename,
		"size":         info.Size,
		"contentType":  info.ContentType,
	})
}

func (a *FileAPI) handleRawUpload(w http.ResponseWriter, r *http.Request, meta map[string]string) {
	filename := r.URL.Query().Get("filename")
	if filename == "" {
		filename = "file"
	}

	obj := edgekit.PutObject{
		Key:            edgekit.RawUploadKey(filename),
		ContentType:    r.Header.Get("Content-Type"),
		CustomMetadata: meta,
	}

	info, err := a.bucket.Put(r.Context(), obj, r.Body)
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"key":     info.Key,
	})
}

func (a *FileAPI) handleList(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")
	if prefix == "" {
		prefix = edgekit.UploadPrefix
	}

	limit := 100
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			limit = max(1, min(1000, parsed))
		}
	}

	query := edgekit.ListQuery{
		Prefix: prefix,
		Limit:  limit,
		Cursor: r.URL.Query().Get("cursor"),
	}

	result, err := a.bucket.List(r.Context(), query)
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, fileListResponse{
		Files:     result.Objects,
		Truncated: result.Truncated,
		Cursor:    result.Cursor,
	})
}

// fileKey extracts the object key from the path remainder after the
// route prefix. r.URL.Path is already percent-decoded, and embedded
// slashes stay part of the key.
func fileKey(r *http.Request, routePrefix string) string {
	return strings.TrimPrefix(r.URL.Path, routePrefix)
}

func (a *FileAPI) handleDownload(w http.ResponseWriter, r *http.Request) {
	key := fileKey(r, "/files/")
	if key == "" {
		WriteError(w, http.StatusNotFound, "File not found")
		return
	}

	info, content, err := a.bucket.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, edgekit.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "File not found")
			return
		}
		HandleError(w, err)
		return
	}
	defer func() { _ = content.Close() }()

	w.Header().Set("ETag", `"`+info.Etag+`"`)
	w.Header().Set("Content-Type", info.ContentType)

	http.ServeContent(w, r, key, info.UploadedAt, content)
}

func (a *FileAPI) handleHead(w http.ResponseWriter, r *http.Request) {
	key := fileKey(r, "/files/")

	info, err := a.bucket.Head(r.Context(), key)
	if err != nil {
		// HEAD responses carry no body, JSON envelope included.
		if errors.Is(err, edgekit.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	w.Header().Set("Content-Type", info.ContentType)
	w.Header().Set("ETag", `"`+info.Etag+`"`)
	w.Header().Set("Last-Modified", info.UploadedAt.UTC().Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)
}

func (a *FileAPI) handleDelete(w http.ResponseWriter, r *http.Request) {
	key := fileKey(r, "/files/")

	if _, err := a.bucket.Head(r.Context(), key); err != nil {
		if errors.Is(err, edgekit.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "File not found")
			return
		}
		HandleError(w, err)
		return
	}

	if err := a.bucket.Delete(r.Context(), key); err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "File deleted",
		"key":     key,
	})
}
