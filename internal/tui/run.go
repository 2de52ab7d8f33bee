package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive browser and blocks until it exits.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Store == nil || cfg.Records == nil || cfg.Engine == nil {
		return fmt.Errorf("tui: store, records and engine are all required")
	}

	program := tea.NewProgram(newModel(ctx, cfg), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
