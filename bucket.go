package edgekit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// Bucket is the object store capability: blob bytes in a BlobStore plus
// a metadata row per object in an ObjectRepo. Both writes happen inside
// one logical backend, so a metadata failure after a successful blob
// write triggers a compensating blob delete.
type Bucket struct {
	repo           ObjectRepo
	store          BlobStore
	cleanupTimeout time.Duration
}

// BucketConfig holds configuration options for Bucket.
type BucketConfig struct {
	CleanupTimeout time.Duration // Timeout for compensating deletes (default: 30s)
}

func NewBucket(repo ObjectRepo, store BlobStore, cfg BucketConfig) *Bucket {
	cleanupTimeout := cfg.CleanupTimeout
	if cleanupTimeout <= 0 {
		cleanupTimeout = 30 * time.Second
	}
	return &Bucket{
		repo:           repo,
		store:          store,
		cleanupTimeout: cleanupTimeout,
	}
}

// Put streams content into blob storage under obj.Key and upserts the
// metadata row. If the metadata write fails, the stored blob is deleted
// using a background context so cleanup completes even when the request
// context is already cancelled.
func (b *Bucket) Put(ctx context.Context, obj PutObject, content io.Reader) (ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return ObjectInfo{}, fmt.Errorf("put object: %w", err)
	}

	if obj.Key == "" {
		return ObjectInfo{}, fmt.Errorf("put object: %w: key cannot be empty", ErrInvalidInput)
	}

	if !IsValidKey(obj.Key) {
		return ObjectInfo{}, fmt.Errorf("put object %s: %w", obj.Key, ErrInvalidInput)
	}

	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	saveResult, writeErr := b.store.Write(ctx, obj.Key, content)
	if writeErr != nil {
		return ObjectInfo{}, fmt.Errorf("put object %s: write failed: %w", obj.Key, writeErr)
	}

	entry := ObjectEntry{
		Key:            obj.Key,
		ContentType:    contentType,
		Etag:           saveResult.Etag,
		Size:           saveResult.BytesWritten,
		CustomMetadata: obj.CustomMetadata,
	}

	info, upsertErr := b.repo.Upsert(ctx, entry)
	if upsertErr != nil {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), b.cleanupTimeout)
		defer cancel()

		if delErr := b.store.Delete(cleanupCtx, obj.Key); delErr != nil {
			return ObjectInfo{}, fmt.Errorf("put object %s: metadata upsert failed (%w) and cleanup failed: %w", obj.Key, upsertErr, delErr)
		}
		return ObjectInfo{}, fmt.Errorf("put object %s: metadata upsert failed: %w", obj.Key, upsertErr)
	}

	return info, nil
}

// Get returns the metadata row and an open reader for the blob.
func (b *Bucket) Get(ctx context.Context, key string) (ObjectInfo, io.ReadSeekCloser, error) {
	if err := ctx.Err(); err != nil {
		return ObjectInfo{}, nil, fmt.Errorf("get object: %w", err)
	}

	info, err := b.repo.Get(ctx, key)
	if err != nil {
		return ObjectInfo{}, nil, fmt.Errorf("get object: %w", err)
	}

	content, err := b.store.Get(ctx, info.Key)
	if err != nil {
		return ObjectInfo{}, nil, fmt.Errorf("get object: %w", err)
	}

	return info, content, nil
}

// Head returns the metadata row without touching the blob.
func (b *Bucket) Head(ctx context.Context, key string) (ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return ObjectInfo{}, fmt.Errorf("head object: %w", err)
	}

	info, err := b.repo.Get(ctx, key)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("head object: %w", err)
	}

	return info, nil
}

// Delete removes the blob and the metadata row. A blob that is already
// gone is not an error; a missing metadata row is ErrNotFound.
func (b *Bucket) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}

	if key == "" {
		return fmt.Errorf("delete object: %w: key cannot be empty", ErrInvalidInput)
	}

	if delErr := b.store.Delete(ctx, key); delErr != nil && !errors.Is(delErr, ErrNotFound) {
		return fmt.Errorf("delete object %s: %w", key, delErr)
	}

	if err := b.repo.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}

	return nil
}

// List returns one page of object metadata. The cursor in the query is
// passed through to the repo unchanged.
func (b *Bucket) List(ctx context.Context, q ListQuery) (ListResult, error) {
	if err := ctx.Err(); err != nil {
		return ListResult{}, fmt.Errorf("list objects: %w", err)
	}

	result, err := b.repo.List(ctx, q)
	if err != nil {
		return ListResult{}, fmt.Errorf("list objects: %w", err)
	}

	return result, nil
}

// Resync walks blob storage and upserts a metadata row for every blob
// found. Used to rebuild the index after metadata loss. Not atomic: a
// failure partway through leaves earlier blobs synced.
func (b *Bucket) Resync(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("resync: %w", err)
	}

	blobs, listErr := b.store.List(ctx)
	if listErr != nil {
		return 0, fmt.Errorf("resync: %w", listErr)
	}

	synced := 0
	for _, blob := range blobs {
		entry := ObjectEntry{
			Key:         blob.Key,
			ContentType: blob.ContentType,
			Etag:        blob.Etag,
			Size:        blob.Size,
		}

		if _, err := b.repo.Upsert(ctx, entry); err != nil {
			return synced, fmt.Errorf("resync '%s': %w", blob.Key, err)
		}
		synced++
	}

	return synced, nil
}
