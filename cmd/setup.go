package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/lacroixthomas/spotify-app/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup writes a starter configuration file at the given path. It refuses to
// overwrite an existing file.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%w: %s already exists", shared.ErrInvalidInput, configPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat %s: %w", configPath, err)
	}

	if err := shared.CreateConfigFile(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	r.writePlain("✓ Wrote %s\n", configPath)
	r.writePlain("Fill in spotify.client_id before running `spotify-app auth login`\n")
	return nil
}
