package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lacroixthomas/spotify-app/internal/session"
	"github.com/lacroixthomas/spotify-app/internal/shared"
	"github.com/lacroixthomas/spotify-app/internal/state"
	"github.com/lacroixthomas/spotify-app/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal client.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/spotify-app-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	if _, err := r.session.Acquire(""); err != nil {
		fileLogger.Warnf("failed to restore session %v", err)
	}

	poller := state.NewPoller(r.state.Player, r.config.Poll.PlayerInterval(), fileLogger)
	loginURL := session.AuthorizeURL(r.config.Spotify, shared.GenerateState())

	model := ui.NewModel(ctx, r.session, r.state, poller, loginURL, fileLogger)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
