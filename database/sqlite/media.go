package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sagarc03/edgekit"
)

type mediaRepo struct {
	db *sql.DB
}

func (r *mediaRepo) List(ctx context.Context) ([]edgekit.MediaItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, filename, caption, created_at
		FROM photos
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list media rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := []edgekit.MediaItem{}
	for rows.Next() {
		var item edgekit.MediaItem
		var caption sql.NullString
		var createdAt string

		if err := rows.Scan(&item.ID, &item.Filename, &caption, &createdAt); err != nil {
			return nil, fmt.Errorf("list media rows: scan: %w", err)
		}

		item.Caption = caption.String
		item.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("list media rows: parse created_at: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list media rows: %w", err)
	}

	return items, nil
}

func (r *mediaRepo) Insert(ctx context.Context, filename, caption string) (int64, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	var captionVal sql.NullString
	if caption != "" {
		captionVal = sql.NullString{String: caption, Valid: true}
	}

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO photos (filename, caption, created_at)
		VALUES (?, ?, ?)`, filename, captionVal, now)
	if err != nil {
		return 0, fmt.Errorf("insert media row: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert media row: last insert id: %w", err)
	}

	return id, nil
}

func (r *mediaRepo) DeleteByFilename(ctx context.Context, filename string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM photos WHERE filename = ?`, filename); err != nil {
		return fmt.Errorf("delete media row: %w", err)
	}
	return nil
}
