package edgekit

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// MediaEntry is the list-view shape for a media record: the relational
// row plus a synthesized retrieval URL.
type MediaEntry struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

// MediaService coordinates the two backends behind the media resource.
// The object store and the relational index are separate capabilities
// with no shared transaction, so multi-step operations run in a fixed
// order and are best-effort after the first step:
//
//   - Create writes the object first, then inserts the row. If the
//     insert fails the object stays behind as an orphan. There is no
//     compensating delete.
//   - Delete removes the object first (a missing key is ignored), then
//     the row, with no existence pre-check.
type MediaService struct {
	bucket *Bucket
	repo   MediaRepo
}

func NewMediaService(bucket *Bucket, repo MediaRepo) *MediaService {
	return &MediaService{bucket: bucket, repo: repo}
}

// Create stores the object under <unix-millis>-<filename> and inserts
// the index row. Returns the object key.
func (s *MediaService) Create(ctx context.Context, filename, caption, contentType string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("create media: %w", err)
	}

	if filename == "" {
		return "", fmt.Errorf("create media: %w: filename cannot be empty", ErrInvalidInput)
	}

	key := MediaKey(filename)

	obj := PutObject{
		Key:         key,
		ContentType: contentType,
	}

	if _, err := s.bucket.Put(ctx, obj, content); err != nil {
		return "", fmt.Errorf("create media: %w", err)
	}

	// Orphan window: the object is stored but not yet indexed. An
	// insert failure here leaves it behind on purpose.
	if _, err := s.repo.Insert(ctx, key, caption); err != nil {
		return "", fmt.Errorf("create media %s: index insert failed: %w", key, err)
	}

	return key, nil
}

// List returns all indexed media, newest first, with retrieval URLs.
// Rows are not checked against the object store; a dangling row yields
// an entry whose URL will 404.
func (s *MediaService) List(ctx context.Context) ([]MediaEntry, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}

	entries := make([]MediaEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, MediaEntry{
			ID:      item.ID,
			Name:    item.Filename,
			URL:     "/media/" + item.Filename,
			Caption: item.Caption,
		})
	}

	return entries, nil
}

// Delete issues both deletes regardless of whether the key exists. An
// absent object or row is treated as already deleted; only hard backend
// failures surface.
func (s *MediaService) Delete(ctx context.Context, filename string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("delete media: %w", err)
	}

	storeErr := s.bucket.Delete(ctx, filename)
	if storeErr != nil && errors.Is(storeErr, ErrNotFound) {
		storeErr = nil
	}

	repoErr := s.repo.DeleteByFilename(ctx, filename)

	if storeErr != nil {
		return fmt.Errorf("delete media %s: %w", filename, storeErr)
	}
	if repoErr != nil {
		return fmt.Errorf("delete media %s: %w", filename, repoErr)
	}

	return nil
}

// Open fetches the object for serving. Callers close the reader.
func (s *MediaService) Open(ctx context.Context, filename string) (ObjectInfo, io.ReadSeekCloser, error) {
	info, content, err := s.bucket.Get(ctx, filename)
	if err != nil {
		return ObjectInfo{}, nil, fmt.Errorf("open media: %w", err)
	}
	return info, content, nil
}
