package main

import (
	"context"
	"fmt"

	"github.com/lacroixthomas/spotify-app/internal/shared"
	"github.com/lacroixthomas/spotify-app/internal/state"
	"github.com/urfave/cli/v3"
)

// PlaylistList fetches and prints the user's playlists.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	credential, err := r.credential()
	if err != nil {
		return err
	}

	if err := r.state.Playlists.Fetch(ctx, credential); err != nil {
		return fmt.Errorf("failed to fetch playlists: %w", err)
	}

	playlists, status := r.state.Playlists.Snapshot()
	if status == state.StatusFailed {
		return r.writePlain("✗ Playlists unavailable\n")
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, cmd.Bool("pretty"))
	}

	if len(playlists) == 0 {
		return r.writePlain("No playlists\n")
	}

	for i, playlist := range playlists {
		r.writePlain("%d. %s\n", i+1, playlist.Name)
		if playlist.OwnerName != "" {
			r.writePlain("   by %s\n", playlist.OwnerName)
		}
		if playlist.URI != "" {
			r.writePlain("   %s\n", playlist.URI)
		}
	}
	return nil
}

// PlaylistStart starts playback of the playlist named by the URI argument.
func (r *Runner) PlaylistStart(ctx context.Context, cmd *cli.Command) error {
	credential, err := r.credential()
	if err != nil {
		return err
	}

	uri := cmd.StringArg("uri")
	if uri == "" {
		return fmt.Errorf("%w: playlist uri", shared.ErrMissingArgument)
	}

	if err := r.state.StartPlaylist(ctx, credential, uri); err != nil {
		return fmt.Errorf("start command failed: %w", err)
	}
	return r.writePlain("▶ Playing %s\n", uri)
}
