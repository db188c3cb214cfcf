package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/sagarc03/edgekit"
	"github.com/sagarc03/edgekit/config"
	"github.com/sagarc03/edgekit/database"
	"github.com/sagarc03/edgekit/filesystem"
	"github.com/sagarc03/edgekit/s3"
)

// connectBackends opens the relational backend and the blob store per
// the configuration. The cleanup function closes both.
func connectBackends(ctx context.Context, cfg *config.Config) (database.Repos, edgekit.BlobStore, func(), error) {
	repos, dbCleanup, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return database.Repos{}, nil, nil, fmt.Errorf("connect database: %w", err)
	}
	slog.Info("connected to database", "type", cfg.Database.Type)

	var store edgekit.BlobStore
	storeCleanup := func() {}

	switch cfg.Storage.Type {
	case "fs":
		if err := os.MkdirAll(cfg.Storage.Path, 0o750); err != nil {
			dbCleanup()
			return database.Repos{}, nil, nil, fmt.Errorf("create storage directory: %w", err)
		}

		root, err := os.OpenRoot(cfg.Storage.Path)
		if err != nil {
			dbCleanup()
			return database.Repos{}, nil, nil, fmt.Errorf("open storage root: %w", err)
		}

		store = filesystem.NewStore(root)
		storeCleanup = func() { _ = root.Close() }
		slog.Info("using filesystem storage", "path", cfg.Storage.Path)

	case "s3":
		s3Store, err := s3.NewStore(cfg.Storage.S3.ToStoreConfig())
		if err != nil {
			dbCleanup()
			return database.Repos{}, nil, nil, fmt.Errorf("connect s3 storage: %w", err)
		}

		store = s3Store
		slog.Info("using s3 storage", "endpoint", cfg.Storage.S3.Endpoint, "bucket", cfg.Storage.S3.Bucket)

	default:
		dbCleanup()
		return database.Repos{}, nil, nil, fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}

	cleanup := func() {
		storeCleanup()
		dbCleanup()
	}

	return repos, store, cleanup, nil
}
