package edgekit

import (
	"context"
	"io"
)

// TodoRepo is the relational capability behind the todo resource.
// Implementations return ErrNotFound when an id does not exist.
type TodoRepo interface {
	// List returns all todos ordered by creation time descending.
	List(ctx context.Context) ([]Todo, error)

	// Get looks a todo up by id.
	Get(ctx context.Context, id int64) (Todo, error)

	// Insert creates a todo with completed=false and returns the
	// store-assigned id. The full row must be re-read with Get; the
	// insert itself does not return it.
	Insert(ctx context.Context, title string) (int64, error)

	// Update applies the non-nil fields of the patch in one
	// parameterized statement, refreshing updated_at. Callers must not
	// invoke it with an empty patch.
	Update(ctx context.Context, id int64, patch TodoPatch) error

	Delete(ctx context.Context, id int64) error
}

// MediaRepo is the relational index for the media resource.
type MediaRepo interface {
	// List returns all media rows ordered by creation time descending.
	List(ctx context.Context) ([]MediaItem, error)

	// Insert creates a row referencing an object key and returns its id.
	Insert(ctx context.Context, filename, caption string) (int64, error)

	// DeleteByFilename removes the row for a key. Deleting a filename
	// with no row is not an error.
	DeleteByFilename(ctx context.Context, filename string) error
}

// ObjectRepo persists object metadata rows for the bucket.
type ObjectRepo interface {
	// Get returns the metadata row for a key, or ErrNotFound.
	Get(ctx context.Context, key string) (ObjectInfo, error)

	// Upsert creates or replaces the metadata row for entry.Key and
	// returns the stored row.
	Upsert(ctx context.Context, entry ObjectEntry) (ObjectInfo, error)

	// Delete removes the metadata row for a key, or ErrNotFound.
	Delete(ctx context.Context, key string) error

	// List returns one page of rows whose key starts with q.Prefix,
	// ordered by (uploaded_at, key).
	List(ctx context.Context, q ListQuery) (ListResult, error)
}

// BlobStore holds object bytes. Implementations can use the local
// filesystem, an S3-compatible service, or anything else that can
// stream.
type BlobStore interface {
	// Get opens a blob for reading. The returned ReadSeekCloser supports
	// range reads; the caller closes it. Returns ErrNotFound for a
	// missing key.
	Get(ctx context.Context, key string) (io.ReadSeekCloser, error)

	// Write stores content under key, overwriting any existing blob,
	// and reports bytes written plus a content hash etag.
	Write(ctx context.Context, key string, content io.Reader) (SaveResult, error)

	// Delete removes a blob. Returns ErrNotFound for a missing key.
	Delete(ctx context.Context, key string) error

	// List walks all blobs in storage. Intended for resync, not for
	// request-path listing.
	List(ctx context.Context) ([]BlobInfo, error)
}
