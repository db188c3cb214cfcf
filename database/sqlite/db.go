// Package sqlite implements the relational repos over SQLite using the
// modernc.org/sqlite driver. Timestamps are stored as RFC3339Nano text.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sagarc03/edgekit"

	_ "modernc.org/sqlite" // SQLite driver
)

// DB wraps a SQLite connection and hands out the repos.
type DB struct {
	db *sql.DB
}

// Connect opens and pings the database at dsn (":memory:" works).
func Connect(ctx context.Context, dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

// Migrate creates the objects, todos and photos tables if missing.
func (d *DB) Migrate(ctx context.Context) error {
	return migrate(ctx, d.db)
}

func (d *DB) Objects() edgekit.ObjectRepo {
	return &objectRepo{db: d.db}
}

func (d *DB) Todos() edgekit.TodoRepo {
	return &todoRepo{db: d.db}
}

func (d *DB) Media() edgekit.MediaRepo {
	return &mediaRepo{db: d.db}
}
