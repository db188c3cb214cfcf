package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sagarc03/edgekit"
)

type mediaRepo struct {
	pool *pgxpool.Pool
}

func (r *mediaRepo) List(ctx context.Context) ([]edgekit.MediaItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, filename, COALESCE(caption, ''), created_at
		FROM photos
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list media rows: %w", err)
	}
	defer rows.Close()

	items := []edgekit.MediaItem{}
	for rows.Next() {
		var item edgekit.MediaItem
		if err := rows.Scan(&item.ID, &item.Filename, &item.Caption, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("list media rows: scan: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list media rows: %w", err)
	}

	return items, nil
}

func (r *mediaRepo) Insert(ctx context.Context, filename, caption string) (int64, error) {
	var captionVal any
	if caption != "" {
		captionVal = caption
	}

	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO photos (filename, caption)
		VALUES ($1, $2)
		RETURNING id`, filename, captionVal).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert media row: %w", err)
	}

	return id, nil
}

func (r *mediaRepo) DeleteByFilename(ctx context.Context, filename string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM photos WHERE filename = $1`, filename); err != nil {
		return fmt.Errorf("delete media row: %w", err)
	}
	return nil
}
