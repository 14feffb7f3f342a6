package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/Iron-Ham/tripflow/internal/config"
	"github.com/Iron-Ham/tripflow/internal/logging"
	"github.com/Iron-Ham/tripflow/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the trip decision-service API",
	Long: `Run the HTTP API the wizard depends on: location search and
validation, route feasibility, travel-mode recommendations, interest
suggestions, trip configuration, and itinerary generation.

The server listens on server.addr (default :8400) and shuts down
cleanly on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg.Server, logger)
	return srv.Run(ctx)
}
