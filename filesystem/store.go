// Package filesystem provides the local blob storage backend. Writes
// are atomic (temp file then rename), etags are SHA-256 content hashes,
// and all access is sandboxed under an os.Root.
package filesystem

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sagarc03/edgekit"
)

// Store is a BlobStore over a sandboxed directory tree. Object keys map
// directly to file paths below the root.
type Store struct {
	root *os.Root
}

// NewStore creates a Store rooted at root. The os.Root sandbox prevents
// any access outside it.
func NewStore(root *os.Root) *Store {
	return &Store{root: root}
}

// Get opens a blob for reading. Returns edgekit.ErrNotFound if the key
// does not exist.
func (s *Store) Get(ctx context.Context, key string) (io.ReadSeekCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := s.root.Open(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, edgekit.ErrNotFound
		}
		return nil, fmt.Errorf("open blob: %w", err)
	}

	return f, nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *ctxReader) Read(p []byte) (n int, err error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}

// Write streams content to a temp file, fsyncs, and renames it into
// place, creating intermediate directories as needed. The etag is the
// hex SHA-256 of the content.
func (s *Store) Write(ctx context.Context, key string, content io.Reader) (edgekit.SaveResult, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return edgekit.SaveResult{}, ctxErr
	}

	tmpName := fmt.Sprintf(".t%s", uuid.New().String())
	t, createErr := s.root.Create(tmpName)
	if createErr != nil {
		return edgekit.SaveResult{}, fmt.Errorf("create temp blob: %w", createErr)
	}

	success := false
	defer func() {
		if closeErr := t.Close(); closeErr != nil {
			slog.Warn("failed to close temp blob", "err", closeErr)
		}
		if !success {
			if rmErr := s.root.Remove(t.Name()); rmErr != nil {
				slog.Warn("failed to remove temp blob", "err", rmErr)
			}
		}
	}()

	h := sha256.New()
	w := io.MultiWriter(h, t)

	written, err := io.Copy(w, &ctxReader{ctx: ctx, r: content})
	if err != nil {
		return edgekit.SaveResult{}, fmt.Errorf("copy blob contents: %w", err)
	}

	if err = t.Sync(); err != nil {
		return edgekit.SaveResult{}, fmt.Errorf("sync blob: %w", err)
	}

	destDir := filepath.Dir(key)
	if destDir != "." {
		if err := s.root.MkdirAll(destDir, 0o755); err != nil {
			return edgekit.SaveResult{}, fmt.Errorf("create blob directories: %w", err)
		}
	}

	if renameErr := s.root.Rename(tmpName, key); renameErr != nil {
		return edgekit.SaveResult{}, fmt.Errorf("rename blob into place: %w", renameErr)
	}

	success = true

	return edgekit.SaveResult{
		BytesWritten: written,
		Etag:         hex.EncodeToString(h.Sum(nil)),
	}, nil
}

// Delete removes a blob. Returns edgekit.ErrNotFound if the key does
// not exist.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.root.Remove(key); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return edgekit.ErrNotFound
		}
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}

// List walks the whole tree and returns every blob with its size,
// SHA-256 etag and extension-derived content type. Used by resync, not
// on the request path.
func (s *Store) List(ctx context.Context) ([]edgekit.BlobInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	blobs := []edgekit.BlobInfo{}
	if err := s.walkDir(ctx, ".", &blobs); err != nil {
		return nil, fmt.Errorf("list blobs: %w", err)
	}

	return blobs, nil
}

func (s *Store) walkDir(ctx context.Context, dir string, blobs *[]edgekit.BlobInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := fs.ReadDir(s.root.FS(), dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		entryPath := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			if err := s.walkDir(ctx, entryPath, blobs); err != nil {
				return err
			}
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return fmt.Errorf("walk dir: %w", err)
		}

		f, err := s.root.Open(entryPath)
		if err != nil {
			return fmt.Errorf("walk dir: %w", err)
		}

		h := sha256.New()
		_, copyErr := io.Copy(h, f)

		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("failed to close blob", "key", entryPath, "err", closeErr)
		}

		if copyErr != nil {
			return fmt.Errorf("walk dir: %w", copyErr)
		}

		*blobs = append(*blobs, edgekit.BlobInfo{
			Key:         filepath.ToSlash(entryPath),
			Size:        info.Size(),
			Etag:        hex.EncodeToString(h.Sum(nil)),
			ContentType: detectContentType(entryPath),
		})
	}

	return nil
}

func detectContentType(key string) string {
	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		return "application/octet-stream"
	}
	return contentType
}
