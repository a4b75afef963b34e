package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/lacroixthomas/spotify-app/internal/api"
	"github.com/lacroixthomas/spotify-app/internal/server"
	"github.com/lacroixthomas/spotify-app/internal/session"
	"github.com/lacroixthomas/spotify-app/internal/shared"
	"github.com/urfave/cli/v3"
)

// authTimeout bounds the wait for the browser redirect.
const authTimeout = 2 * time.Minute

// AuthLogin runs the implicit-grant flow: it starts a local capture server at
// the configured redirect URI, opens the authorization page, and adopts the
// credential delivered by the redirect.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if r.config.Spotify.ClientID == "" {
		return fmt.Errorf("%w: spotify client_id must be set in config.toml", shared.ErrMissingConfig)
	}

	credential, err := r.doImplicitAuth(ctx, cmd.Bool("no-browser"))
	if err != nil {
		return err
	}

	if err := r.session.Adopt(credential); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}

	r.writePlain("✓ Authorization successful\n")
	r.writePlain("You can now use: spotify-app player show\n")
	return nil
}

// doImplicitAuth executes the authorization redirect with a local HTTP server.
func (r *Runner) doImplicitAuth(ctx context.Context, noBrowser bool) (string, error) {
	state := shared.GenerateState()
	authURL := session.AuthorizeURL(r.config.Spotify, state)

	redirect, err := url.Parse(r.config.Spotify.RedirectURI)
	if err != nil {
		return "", fmt.Errorf("%w: invalid redirect_uri: %v", shared.ErrInvalidConfig, err)
	}

	handler := server.NewImplicitHandler(state)
	router := server.NewBasicRouter()
	router.Handler(handler)

	httpServer := &http.Server{
		Addr:    redirect.Host,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting capture server at %v", redirect.Host)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	if noBrowser {
		r.writePlain("Open this URL in your browser:\n%s\n\n", authURL)
	} else {
		r.writePlain("→ Opening browser for Spotify authorization...\n")
		if err := shared.OpenBrowser(authURL); err != nil {
			r.logger.Warnf("failed to open browser automatically %v", err)
			r.writePlainln("⚠ Could not open browser automatically.")
			r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
		}
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(authTimeout)
	defer timeout.Stop()

	var result server.TokenResult

	select {
	case result = <-handler.Result():
		// Got result from redirect
	case err := <-serverErrors:
		return "", fmt.Errorf("capture server error: %w", err)
	case <-timeout.C:
		return "", fmt.Errorf("%w: authorization timed out", shared.ErrAuthFailed)
	case <-ctx.Done():
		return "", ctx.Err()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down capture server", "error", err)
	}

	if result.Error() != nil {
		return "", fmt.Errorf("authorization failed: %w", result.Error())
	}
	if result.Credential == "" {
		return "", fmt.Errorf("%w: no credential received", shared.ErrAuthFailed)
	}

	return result.Credential, nil
}

// AuthStatus reports whether a session credential is present, optionally
// verifying it against the backend's user endpoint.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	credential, err := r.credential()
	if err != nil {
		return r.writePlain("✗ Not authenticated\n")
	}

	r.writePlain("✓ Credential present\n")

	if !cmd.Bool("verify") {
		return nil
	}

	resp, err := r.client.Call(ctx, http.MethodGet, api.PathUser, credential, nil)
	if err != nil {
		return fmt.Errorf("%w: backend unreachable: %v", shared.ErrAPIRequest, err)
	}
	if !resp.OK() {
		return r.writePlain("✗ Credential rejected by backend (status %d)\n", resp.StatusCode)
	}

	user, err := api.NormalizeUser(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if user.DisplayName != "" {
		return r.writePlain("✓ Verified as %s\n", user.DisplayName)
	}
	return r.writePlain("✓ Credential accepted by backend\n")
}

// AuthLogout clears the stored credential.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.session.LogOut(); err != nil {
		return err
	}
	return r.writePlain("✓ Logged out\n")
}
