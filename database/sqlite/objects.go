package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sagarc03/edgekit"
	"github.com/sagarc03/edgekit/database/internal"
)

type objectRepo struct {
	db *sql.DB
}

func scanObject(scan func(...any) error) (edgekit.ObjectInfo, error) {
	var o edgekit.ObjectInfo
	var idStr, uploadedAt string
	var customMetadata sql.NullString

	if err := scan(&idStr, &o.Key, &o.ContentType, &o.Etag, &o.Size, &customMetadata, &uploadedAt); err != nil {
		return edgekit.ObjectInfo{}, err
	}

	var err error
	o.ID, err = uuid.Parse(idStr)
	if err != nil {
		return edgekit.ObjectInfo{}, fmt.Errorf("parse uuid: %w", err)
	}

	o.UploadedAt, err = time.Parse(time.RFC3339Nano, uploadedAt)
	if err != nil {
		return edgekit.ObjectInfo{}, fmt.Errorf("parse uploaded_at: %w", err)
	}

	if customMetadata.Valid && customMetadata.String != "" {
		if err := json.Unmarshal([]byte(customMetadata.String), &o.CustomMetadata); err != nil {
			return edgekit.ObjectInfo{}, fmt.Errorf("parse custom_metadata: %w", err)
		}
	}

	return o, nil
}

func (r *objectRepo) Get(ctx context.Context, key string) (edgekit.ObjectInfo, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, key, content_type, etag, size_bytes, custom_metadata, uploaded_at
		FROM objects
		WHERE key = ?`, key)

	o, err := scanObject(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return edgekit.ObjectInfo{}, edgekit.ErrNotFound
		}
		return edgekit.ObjectInfo{}, fmt.Errorf("get object row: %w", err)
	}

	return o, nil
}

func (r *objectRepo) Upsert(ctx context.Context, entry edgekit.ObjectEntry) (edgekit.ObjectInfo, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	var customMetadata sql.NullString
	if len(entry.CustomMetadata) > 0 {
		raw, err := json.Marshal(entry.CustomMetadata)
		if err != nil {
			return edgekit.ObjectInfo{}, fmt.Errorf("upsert object row: encode custom_metadata: %w", err)
		}
		customMetadata = sql.NullString{String: string(raw), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO objects (id, key, content_type, etag, size_bytes, custom_metadata, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			content_type = excluded.content_type,
			etag = excluded.etag,
			size_bytes = excluded.size_bytes,
			custom_metadata = excluded.custom_metadata,
			uploaded_at = excluded.uploaded_at`,
		uuid.New().String(), entry.Key, entry.ContentType, entry.Etag, entry.Size, customMetadata, now,
	)
	if err != nil {
		return edgekit.ObjectInfo{}, fmt.Errorf("upsert object row: %w", err)
	}

	return r.Get(ctx, entry.Key)
}

func (r *objectRepo) Delete(ctx context.Context, key string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM objects WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete object row: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete object row: rows affected: %w", err)
	}

	if affected == 0 {
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
			WHERE key LIKE ? || '%' ESCAPE '\'
			ORDER BY uploaded_at, key
			LIMIT ?`
		args = []any{escapedPrefix, q.Limit + 1}
	} else {
		query = `
			SELECT id, key, content_type, etag, size_bytes, custom_metadata, uploaded_at
			FROM objects
			WHERE key LIKE ? || '%' ESCAPE '\' AND (uploaded_at, key) > (?, ?)
			ORDER BY uploaded_at, key
			LIMIT ?`
		args = []any{escapedPrefix, cursor.UploadedAt.UTC().Format(time.RFC3339Nano), cursor.Key, q.Limit + 1}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return edgekit.ListResult{}, fmt.Errorf("list object rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	objects := make([]edgekit.ObjectInfo, 0, q.Limit)
	for rows.Next() {
		o, scanErr := scanObject(rows.Scan)
		if scanErr != nil {
			return edgekit.ListResult{}, fmt.Errorf("list object rows: scan: %w", scanErr)
		}
		objects = append(objects, o)
	}

	if err := rows.Err(); err != nil {
		return edgekit.ListResult{}, fmt.Errorf("list object rows: %w", err)
	}

	result := edgekit.ListResult{Objects: objects}
	if len(objects) > q.Limit {
		// The cursor points at the last item of the returned page.
		last := objects[q.Limit-1]
		result.Objects = objects[:q.Limit]
		result.Truncated = true
		result.Cursor = internal.EncodeCursor(last.UploadedAt, last.Key)
	}

	return result, nil
}
