// Package postgres implements the relational repos over PostgreSQL
// using a pgx connection pool.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sagarc03/edgekit"
)

// DB wraps a pgx pool and hands out the repos.
type DB struct {
	pool *pgxpool.Pool
}

// Connect opens a connection pool against dsn and pings it.
func Connect(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &DB{pool: pool}, nil
}

func (d *DB) Close() error {
	d.pool.Close()
	return nil
}

// Migrate creates the objects, todos and photos tables if missing.
func (d *DB) Migrate(ctx context.Context) error {
	return migrate(ctx, d.pool)
}

func (d *DB) Objects() edgekit.ObjectRepo {
	return &objectRepo{pool: d.pool}
}

func (d *DB) Todos() edgekit.TodoRepo {
	return &todoRepo{pool: d.pool}
}

func (d *DB) Media() edgekit.MediaRepo {
	return &mediaRepo{pool: d.pool}
}
