package cmd

import (
	"fmt"

	"github.com/Iron-Ham/tripflow/internal/config"
	"github.com/Iron-Ham/tripflow/internal/logging"
	"github.com/Iron-Ham/tripflow/internal/wizard"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Launch the interactive trip-planning wizard",
	Long: `Launch the staged trip-planning wizard: route selection with
live city search, feasibility validation, travel-mode choice, interest
and constraint configuration, and itinerary generation.

The wizard needs a running decision service; start one with
'tripflow serve' or point client.base_url at an existing instance.`,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Stderr logging would corrupt the alt-screen TUI, so the wizard
	// always logs to a file. Fall back to the session state dir when no
	// log dir is configured.
	logDir := cfg.Logging.Dir
	if logDir == "" {
		logDir = cfg.Session.ResolveStateDir()
	}
	logger, err := logging.NewLogger(logDir, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logger.Close()

	return wizard.Run(cfg, logger)
}
