// Package database routes between the supported relational backends and
// hands the rest of the application a uniform set of repos.
package database

import (
	"context"
	"fmt"

	"github.com/sagarc03/edgekit"
	"github.com/sagarc03/edgekit/database/postgres"
	"github.com/sagarc03/edgekit/database/sqlite"
)

// Config holds the configuration for connecting to a relational backend.
type Config struct {
	// Type specifies the database type: "sqlite" or "postgres"
	Type string
	// DSN is the data source name (connection string)
	DSN string
}

// Repos bundles the relational capabilities the services consume.
type Repos struct {
	Objects edgekit.ObjectRepo
	Todos   edgekit.TodoRepo
	Media   edgekit.MediaRepo
}

// Connect establishes a connection to the configured backend, runs
// migrations, and returns the repos. The returned cleanup function
// should be called to close the connection.
func Connect(ctx context.Context, cfg Config) (Repos, func(), error) {
	switch cfg.Type {
	case "sqlite":
		db, err := sqlite.Connect(ctx, cfg.DSN)
		if err != nil {
			return Repos{}, nil, err
		}

		if err = db.Migrate(ctx); err != nil {
			_ = db.Close()
			return Repos{}, nil, fmt.Errorf("migrate sqlite: %w", err)
		}

		repos := Repos{Objects: db.Objects(), Todos: db.Todos(), Media: db.Media()}
		return repos, func() { _ = db.Close() }, nil

	case "postgres":
		db, err := postgres.Connect(ctx, cfg.DSN)
		if err != nil {
			return Repos{}, nil, err
		}

		if err = db.Migrate(ctx); err != nil {
			_ = db.Close()
			return Repos{}, nil, fmt.Errorf("migrate postgres: %w", err)
		}

		repos := Repos{Objects: db.Objects(), Todos: db.Todos(), Media: db.Media()}
		return repos, func() { _ = db.Close() }, nil

	default:
		return Repos{}, nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}
}
