package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sagarc03/edgekit"
	"github.com/sagarc03/edgekit/ai"
	"github.com/sagarc03/edgekit/config"
	edgehttp "github.com/sagarc03/edgekit/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the edgekit HTTP server.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 8787, "HTTP server port")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	repos, store, cleanup, err := connectBackends(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	bucket := edgekit.NewBucket(repos.Objects, store, edgekit.BucketConfig{
		CleanupTimeout: time.Duration(cfg.Service.CleanupTimeout) * time.Second,
	})

	var inference edgehttp.Inference
	if cfg.AI.BaseURL != "" {
		client, err := ai.NewClient(cfg.AI.ToClientConfig())
		if err != nil {
			return fmt.Errorf("create ai client: %w", err)
		}
		inference = client
		slog.Info("ai passthrough enabled", "chat_model", cfg.AI.ChatModel, "image_model", cfg.AI.ImageModel)
	} else {
		slog.Info("ai passthrough disabled: no base url configured")
	}

	handler := edgehttp.NewHandler(
		edgehttp.HandlerConfig{
			MaxUploadSize: cfg.Server.MaxUploadSize,
			CORS:          cfg.CORS,
		},
		edgehttp.Deps{
			Todos:  edgekit.NewTodoService(repos.Todos),
			Bucket: bucket,
			Media:  edgekit.NewMediaService(bucket, repos.Media),
			AI:     inference,
		},
	)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-sigCh:
		case <-ctx.Done():
			return
		}

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
		cancel()
	}()

	slog.Info("starting server", "addr", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
