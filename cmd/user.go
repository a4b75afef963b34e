package main

import (
	"context"
	"fmt"

	"github.com/lacroixthomas/spotify-app/internal/state"
	"github.com/urfave/cli/v3"
)

// UserShow fetches and prints the current user's profile.
func (r *Runner) UserShow(ctx context.Context, cmd *cli.Command) error {
	credential, err := r.credential()
	if err != nil {
		return err
	}

	if err := r.state.User.Fetch(ctx, credential); err != nil {
		return fmt.Errorf("failed to fetch user profile: %w", err)
	}

	user, status := r.state.User.Snapshot()
	if status == state.StatusFailed {
		return r.writePlain("✗ User profile unavailable\n")
	}

	if cmd.Bool("json") {
		return r.writeJSON(user, cmd.Bool("pretty"))
	}

	if user.DisplayName != "" {
		r.writePlain("%s\n", user.DisplayName)
	}
	if user.ID != "" {
		r.writePlain("  id: %s\n", user.ID)
	}
	return nil
}
