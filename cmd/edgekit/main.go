package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sagarc03/edgekit/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "edgekit",
	Short:   "Example resource APIs over storage, database and inference backends",
	Long: `Edgekit serves a todo API, a file API, a media API and an AI
inference passthrough over pluggable storage, database and inference
backends.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var configFiles []string
		if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
			configFiles = []string{configFile}
		}

		cfg, err := config.Load(configFiles, cmd.Flags())
		if err != nil {
			return err
		}

		setupLogging(cfg.Log)
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("db-type", "", "database type: sqlite, postgres (env: EDGEKIT_DATABASE_TYPE)")
	rootCmd.PersistentFlags().String("db-dsn", "", "database connection string (env: EDGEKIT_DATABASE_DSN)")
	rootCmd.PersistentFlags().String("storage-type", "", "blob storage backend: fs, s3 (env: EDGEKIT_STORAGE_TYPE)")
	rootCmd.PersistentFlags().String("storage-path", "", "storage directory for the fs backend (env: EDGEKIT_STORAGE_PATH)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
