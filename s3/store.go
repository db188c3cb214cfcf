// Package s3 provides a blob storage backend over any S3-compatible
// endpoint (MinIO, R2, AWS) using the minio client.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sagarc03/edgekit"
)

// Config holds connection settings for an S3-compatible endpoint.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Store is a BlobStore backed by one bucket on an S3-compatible
// service.
type Store struct {
	client *minio.Client
	bucket string
}

// NewStore validates the config and builds the client. It does not
// touch the network; the first operation does.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("new s3 store: endpoint cannot be empty")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("new s3 store: bucket cannot be empty")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("new s3 store: %w", err)
	}

	return &Store{client: client, bucket: cfg.Bucket}, nil
}

func isNoSuchKey(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.Code == "NotFound"
}

// Get stats the key first so a missing blob maps to ErrNotFound rather
// than surfacing lazily on the first read. The returned object supports
// Seek for range serving.
func (s *Store) Get(ctx context.Context, key string) (io.ReadSeekCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
		if isNoSuchKey(err) {
			return nil, edgekit.ErrNotFound
		}
		return nil, fmt.Errorf("stat blob: %w", err)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("open blob: %w", err)
	}

	return obj, nil
}

// Write streams content to the bucket. Size is unknown up front, so the
// client uses multipart streaming; the etag comes back from the upload.
func (s *Store) Write(ctx context.Context, key string, content io.Reader) (edgekit.SaveResult, error) {
	if err := ctx.Err(); err != nil {
		return edgekit.SaveResult{}, err
	}

	info, err := s.client.PutObject(ctx, s.bucket, key, content, -1, minio.PutObjectOptions{
		ContentType: detectContentType(key),
	})
	if err != nil {
		return edgekit.SaveResult{}, fmt.Errorf("put blob: %w", err)
	}

	return edgekit.SaveResult{
		BytesWritten: info.Size,
		Etag:         info.ETag,
	}, nil
}

// Delete removes a blob. S3 deletes are idempotent at the wire level,
// so the key is stat'ed first to honor the ErrNotFound contract.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
		if isNoSuchKey(err) {
			return edgekit.ErrNotFound
		}
		return fmt.Errorf("stat blob: %w", err)
	}

	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete blob: %w", err)
	}

	return nil
}

// List walks the whole bucket. Content types are derived from the key
// extension; stat-ing every object would cost one round trip each and
// resync only needs a best-effort type.
func (s *Store) List(ctx context.Context) ([]edgekit.BlobInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	blobs := []edgekit.BlobInfo{}
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list blobs: %w", obj.Err)
		}
		blobs = append(blobs, edgekit.BlobInfo{
			Key:         obj.Key,
			Size:        obj.Size,
			Etag:        obj.ETag,
			ContentType: detectContentType(obj.Key),
		})
	}

	return blobs, nil
}

func detectContentType(key string) string {
	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		return "application/octet-stream"
	}
	return contentType
}
