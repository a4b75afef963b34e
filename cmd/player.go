package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/lacroixthomas/spotify-app/internal/state"
	"github.com/urfave/cli/v3"
)

// PlayerShow fetches and prints the current playback state.
func (r *Runner) PlayerShow(ctx context.Context, cmd *cli.Command) error {
	credential, err := r.credential()
	if err != nil {
		return err
	}

	if err := r.state.Player.Fetch(ctx, credential); err != nil {
		return fmt.Errorf("failed to fetch player state: %w", err)
	}

	player, status := r.state.Player.Snapshot()
	if status == state.StatusFailed {
		return r.writePlain("✗ Player state unavailable\n")
	}

	if cmd.Bool("json") {
		return r.writeJSON(player, cmd.Bool("pretty"))
	}

	if player.MusicName == "" {
		return r.writePlain("Nothing playing\n")
	}

	marker := "⏸"
	if player.IsPlaying {
		marker = "▶"
	}

	r.writePlain("%s %s\n", marker, player.MusicName)
	if len(player.Artists) > 0 {
		r.writePlain("  %s\n", strings.Join(player.Artists, ", "))
	}
	if player.AlbumName != "" {
		if player.ReleaseDate != "" {
			r.writePlain("  %s (%s)\n", player.AlbumName, player.ReleaseDate)
		} else {
			r.writePlain("  %s\n", player.AlbumName)
		}
	}
	if player.Duration > 0 {
		r.writePlain("  %s / %s\n", formatTrackTime(player.Progress), formatTrackTime(player.Duration))
	}
	return nil
}

// PlayerPlay resumes playback. With a URI argument it starts that context.
func (r *Runner) PlayerPlay(ctx context.Context, cmd *cli.Command) error {
	credential, err := r.credential()
	if err != nil {
		return err
	}

	uri := cmd.StringArg("uri")
	if err := r.state.Play(ctx, credential, uri); err != nil {
		return fmt.Errorf("play command failed: %w", err)
	}

	if uri != "" {
		return r.writePlain("▶ Playing %s\n", uri)
	}
	return r.writePlain("▶ Resumed\n")
}

// PlayerPause pauses playback.
func (r *Runner) PlayerPause(ctx context.Context, cmd *cli.Command) error {
	credential, err := r.credential()
	if err != nil {
		return err
	}

	if err := r.state.Pause(ctx, credential); err != nil {
		return fmt.Errorf("pause command failed: %w", err)
	}
	return r.writePlain("⏸ Paused\n")
}

// PlayerNext skips to the next track.
func (r *Runner) PlayerNext(ctx context.Context, cmd *cli.Command) error {
	credential, err := r.credential()
	if err != nil {
		return err
	}

	if err := r.state.Next(ctx, credential); err != nil {
		return fmt.Errorf("next command failed: %w", err)
	}
	return r.writePlain("⏭ Skipped\n")
}

// PlayerPrevious skips to the previous track.
func (r *Runner) PlayerPrevious(ctx context.Context, cmd *cli.Command) error {
	credential, err := r.credential()
	if err != nil {
		return err
	}

	if err := r.state.Previous(ctx, credential); err != nil {
		return fmt.Errorf("previous command failed: %w", err)
	}
	return r.writePlain("⏮ Skipped back\n")
}

func formatTrackTime(ms int) string {
	if ms < 0 {
		ms = 0
	}
	total := ms / 1000
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
