package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sagarc03/edgekit"
	"github.com/sagarc03/edgekit/database/internal"
)

type objectRepo struct {
	pool *pgxpool.Pool
}

func (r *objectRepo) Get(ctx context.Context, key string) (edgekit.ObjectInfo, error) {
	query := `
		SELECT id, key, content_type, etag, size_bytes, custom_metadata, uploaded_at
		FROM objects
		WHERE key = $1`

	var o edgekit.ObjectInfo
	err := r.pool.QueryRow(ctx, query, key).Scan(
		&o.ID, &o.Key, &o.ContentType, &o.Etag, &o.Size, &o.CustomMetadata, &o.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return edgekit.ObjectInfo{}, edgekit.ErrNotFound
		}
		return edgekit.ObjectInfo{}, fmt.Errorf("get object row: %w", err)
	}

	return o, nil
}

func (r *objectRepo) Upsert(ctx context.Context, entry edgekit.ObjectEntry) (edgekit.ObjectInfo, error) {
	query := `
		INSERT INTO objects (key, content_type, etag, size_bytes, custom_metadata)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (key) DO UPDATE SET
			content_type = EXCLUDED.content_type,
			etag = EXCLUDED.etag,
			size_bytes = EXCLUDED.size_bytes,
			custom_metadata = EXCLUDED.custom_metadata,
			uploaded_at = NOW()
		RETURNING id, key, content_type, etag, size_bytes, custom_metadata, uploaded_at`

	var customMetadata any
	if len(entry.CustomMetadata) > 0 {
		customMetadata = entry.CustomMetadata
	}

	var o edgekit.ObjectInfo
	err := r.pool.QueryRow(ctx, query,
		entry.Key, entry.ContentType, entry.Etag, entry.Size, customMetadata,
	).Scan(
		&o.ID, &o.Key, &o.ContentType, &o.Etag, &o.Size, &o.CustomMetadata, &o.UploadedAt,
	)
	if err != nil {
		return edgekit.ObjectInfo{}, fmt.Errorf("upsert object row: %w", err)
	}

	return o, nil
}

func (r *objectRepo) Delete(ctx context.Context, key string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM objects WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("delete object row: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete object row: %w", edgekit.ErrNotFound)
	}

	return nil
}

func (r *objectRepo) List(ctx context.Context, q edgekit.ListQuery) (edgekit.ListResult, error) {
	cursor, err := internal.DecodeCursor(q.Cursor)
	if err != nil {
		return edgekit.ListResult{}, fmt.Errorf("list object rows: %w", err)
	}

	escapedPrefix := internal.EscapeLikePattern(q.Prefix)

	var query string
	var args []any

	if q.Cursor == "" {
		query = `
			SELECT id, key, content_type, etag, size_bytes, custom_metadata, uploaded_at
			FROM objects
			WHERE key LIKE $1 || '%'
			ORDER BY uploaded_at, key
			LIMIT $2`
		args = []any{escapedPrefix, q.Limit + 1}
	} else {
		query = `
			SELECT id, key, content_type, etag, size_bytes, custom_metadata, uploaded_at
			FROM objects
			WHERE key LIKE $1 || '%' AND (uploaded_at, key) > ($2, $3)
			ORDER BY uploaded_at, key
			LIMIT $4`
		args = []any{escapedPrefix, cursor.UploadedAt, cursor.Key, q.Limit + 1}
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return edgekit.ListResult{}, fmt.Errorf("list object rows: %w", err)
	}
	defer rows.Close()

	objects := make([]edgekit.ObjectInfo, 0, q.Limit)
	for rows.Next() {
		var o edgekit.ObjectInfo
		if err := rows.Scan(&o.ID, &o.Key, &o.ContentType, &o.Etag, &o.Size, &o.CustomMetadata, &o.UploadedAt); err != nil {
			return edgekit.ListResult{}, fmt.Errorf("list object rows: scan: %w", err)
		}
		objects = append(objects, o)
	}

	if err := rows.Err(); err != nil {
		return edgekit.ListResult{}, fmt.Errorf("list object rows: %w", err)
	}

	result := edgekit.ListResult{Objects: objects}
	if len(objects) > q.Limit {
		last := objects[q.Limit-1]
		result.Objects = objects[:q.Limit]
		result.Truncated = true
		result.Cursor = internal.EncodeCursor(last.UploadedAt, last.Key)
	}

	return result, nil
}
