package main

import (
	"context"
	"errors"
	"os"

	"github.com/lacroixthomas/spotify-app/internal/api"
	"github.com/lacroixthomas/spotify-app/internal/session"
	"github.com/lacroixthomas/spotify-app/internal/shared"
	"github.com/lacroixthomas/spotify-app/internal/state"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		} else {
			logger.Warnf("failed to load config.toml, using defaults: %v", err)
		}
	}

	var sessionManager *session.Manager
	if store, err := session.NewSQLiteStore(config.StoragePath()); err == nil {
		sessionManager = session.NewManager(store, logger)
		defer store.Close()
	} else {
		logger.Warnf("credential store unavailable, session will not persist: %v", err)
		sessionManager = session.NewManager(session.NewMemoryStore(), logger)
	}

	client := api.NewClient(config.API.BaseURL, nil, config.API.RateLimit, logger)

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Session: sessionManager,
		Client:  client,
		State:   state.NewStore(client, logger),
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "spotify-app",
		Usage:    "Control Spotify playback from the terminal",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotAuthenticated) {
			logger.Error(err.Error())
			os.Exit(1)
		}
		logger.Fatalf("application error: %v", err)
	}
}
