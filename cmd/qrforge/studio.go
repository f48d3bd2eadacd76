package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/qrforge/internal/tui"
)

var studioRunner = runStudio

func runStudio(cmd *cobra.Command, flags *rootFlags) error {
	app, err := loadApp(cmd, flags, true)
	if err != nil {
		return err
	}
	defer app.close()

	ctx := cmd.Context()
	m, err := tui.NewModel(tui.Options{
		Config:   app.cfg,
		Store:    app.store,
		DarkHint: darkHint,
		Logger:   app.log,
		Context:  ctx,
	})
	if err != nil {
		app.log.Error(err, "failed to build studio")
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		app.log.Error(err, "studio execution failed")
		return fmt.Errorf("failed to run studio: %w", err)
	}

	app.log.Info("studio closed")
	return nil
}
