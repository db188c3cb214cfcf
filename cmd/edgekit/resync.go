package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sagarc03/edgekit"
	"github.com/sagarc03/edgekit/config"
)

var resyncCmd = &cobra.Command{
	Use:   "resync",
	Short: "Rebuild object metadata rows from blob storage",
	Long: `Walk blob storage and upsert a metadata row for every blob found.
Use after metadata loss or when importing an existing directory of files.`,
	RunE: runResync,
}

func init() {
	rootCmd.AddCommand(resyncCmd)
}

func runResync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	repos, store, cleanup, err := connectBackends(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	bucket := edgekit.NewBucket(repos.Objects, store, edgekit.BucketConfig{})

	synced, err := bucket.Resync(ctx)
	if err != nil {
		slog.Error("resync failed", "synced", synced, "err", err)
		return err
	}

	slog.Info("resync complete", "synced", synced)
	return nil
}
