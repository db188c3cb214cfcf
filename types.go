package edgekit

import (
	"time"

	"github.com/google/uuid"
)

// Todo is a row in the todos table. IDs are assigned by the relational
// store and are immutable.
type Todo struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TodoPatch is a partial update. Nil fields are left untouched; the
// repos turn the non-nil fields into one parameterized UPDATE.
type TodoPatch struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

// IsEmpty reports whether the patch carries no fields at all, in which
// case no write is issued.
func (p TodoPatch) IsEmpty() bool {
	return p.Title == nil && p.Completed == nil
}

// ObjectInfo describes a stored object: blob bytes plus the metadata row
// that indexes them.
type ObjectInfo struct {
	ID             uuid.UUID         `json:"id"`
	Key            string            `json:"key"`
	ContentType    string            `json:"content_type"`
	Etag           string            `json:"etag"`
	Size           int64             `json:"size"`
	CustomMetadata map[string]string `json:"custom_metadata,omitempty"`
	UploadedAt     time.Time         `json:"uploaded"`
}

// ObjectEntry is the write-side record for an object metadata row.
type ObjectEntry struct {
	Key            string
	ContentType    string
	Etag           string
	Size           int64
	CustomMetadata map[string]string
}

// PutObject carries caller-supplied attributes for a bucket write.
type PutObject struct {
	Key            string
	ContentType    string
	CustomMetadata map[string]string
}

// ListQuery selects a page of object metadata. Cursor is opaque to
// callers and produced by a previous ListResult.
type ListQuery struct {
	Prefix string
	Limit  int
	Cursor string
}

// ListResult is one page of object metadata. Cursor is only set when
// Truncated is true.
type ListResult struct {
	Objects   []ObjectInfo `json:"objects"`
	Truncated bool         `json:"truncated"`
	Cursor    string       `json:"cursor,omitempty"`
}

// SaveResult reports the outcome of a blob write.
type SaveResult struct {
	BytesWritten int64
	Etag         string
}

// BlobInfo describes a blob found by a storage walk. Used by Resync to
// rebuild metadata rows.
type BlobInfo struct {
	Key         string
	Size        int64
	Etag        string
	ContentType string
}

// MediaItem is a row in the photos table. Filename doubles as the object
// key in blob storage; the pairing is best-effort, not transactional.
type MediaItem struct {
	ID        int64     `json:"id"`
	Filename  string    `json:"filename"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"created_at"`
}
