package wizard

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/tripflow/internal/client"
	"github.com/Iron-Ham/tripflow/internal/config"
	"github.com/Iron-Ham/tripflow/internal/logging"
	"github.com/Iron-Ham/tripflow/internal/session"
)

// Run wires the wizard together and blocks until the user quits.
func Run(cfg *config.Config, logger *logging.Logger) error {
	c := client.New(cfg.Client, logger)

	store, err := session.NewTripStore(cfg.Session.ResolveStateDir())
	if err != nil {
		logger.Warn("session persistence disabled", "error", err)
		store = nil
	}

	model := New(cfg.Wizard, c, store, logger)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("wizard exited with error: %w", err)
	}
	return nil
}
