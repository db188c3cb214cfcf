package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

var migrations = []struct {
	name string
	stmt string
}{
	{
		name: "objects",
		stmt: `
			CREATE TABLE IF NOT EXISTS objects (
				id TEXT NOT NULL PRIMARY KEY,
				key TEXT NOT NULL UNIQUE,
				content_type TEXT NOT NULL,
				etag TEXT NOT NULL,
				size_bytes INTEGER NOT NULL,
				custom_metadata TEXT,
				uploaded_at TEXT NOT NULL
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
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				title TEXT NOT NULL,
				completed INTEGER NOT NULL DEFAULT 0,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
			)
		`,
	},
	{
		name: "photos",
		stmt: `
			CREATE TABLE IF NOT EXISTS photos (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				filename TEXT NOT NULL,
				caption TEXT,
				created_at TEXT NOT NULL
			)
		`,
	},
	{
		name: "photos_filename_index",
		stmt: `CREATE INDEX IF NOT EXISTS idx_photos_filename ON photos (filename)`,
	},
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, m := range migrations {
		if _, err := db.ExecContext(ctx, m.stmt); err != nil {
			return fmt.Errorf("migrate %s: %w", m.name, err)
		}
	}
	return nil
}
