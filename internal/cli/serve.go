package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/evcraddock/realstate-api/internal/config"
	"github.com/evcraddock/realstate-api/internal/image"
	"github.com/evcraddock/realstate-api/internal/logging"
	"github.com/evcraddock/realstate-api/internal/property"
	"github.com/evcraddock/realstate-api/internal/upload"
	"github.com/evcraddock/realstate-api/internal/web"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the HTTP API server. Settings come from --config, .env and the environment.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadServerConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, cfg)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8000, "port to listen on (overrides PORT)")

	return cmd
}

func runServe(ctx context.Context, cfg config.Config) error {
	if err := logging.Setup(cfg.Environment, cfg.LogLevel); err != nil {
		return err
	}
	if !logging.IsDev(cfg.Environment) {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer closeStore(store)
	slog.Info("store opened", "driver", cfg.DatabaseDriver)

	if err := os.MkdirAll(cfg.ImagesDirectory, 0o755); err != nil {
		return fmt.Errorf("creating images directory: %w", err)
	}

	validator := upload.NewValidator(cfg.AllowedExtensions, cfg.MaxFileSizeMB)
	svc := property.NewService(
		property.NewRepository(store),
		image.NewRepository(store),
		validator,
		cfg.ImagesDirectory,
	)
	srv := web.NewServer(svc, store, web.Options{
		RequestTimeout: cfg.RequestTimeout,
		MaxUploadBytes: validator.MaxBytes(),
	})

	return srv.ListenAndServe(ctx, cfg.Addr())
}
