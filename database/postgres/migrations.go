package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var migrations = []struct {
	name string
	stmt string
}{
	{
		name: "objects",
		stmt: `
			CREATE TABLE IF NOT EXISTS objects (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				key TEXT NOT NULL UNIQUE,
				content_type TEXT NOT NULL,
				etag TEXT NOT NULL,
				size_bytes BIGINT NOT NULL,
				custom_metadata JSONB,
				uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`,
	},
	{
		name: "objects_list_index",
		stmt: `CREATE INDEX IF NOT EXISTS idx_objects_list ON objects (uploaded_at, key)`,
	},
	{
		name: "todos",
		stmt: `
			CREATE TABLE IF NOT EXISTS todos (
				id BIGSERIAL PRIMARY KEY,
				title TEXT NOT NULL,
				completed BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`,
	},
	{
		name: "photos",
		stmt: `
			CREATE TABLE IF NOT EXISTS photos (
				id BIGSERIAL PRIMARY KEY,
				filename TEXT NOT NULL,
				caption TEXT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`,
	},
	{
		name: "photos_filename_index",
		stmt: `CREATE INDEX IF NOT EXISTS idx_photos_filename ON photos (filename)`,
	},
}

func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, m := range migrations {
		if _, err := pool.Exec(ctx, m.stmt); err != nil {
			return fmt.Errorf("migrate %s: %w", m.name, err)
		}
	}
	return nil
}
