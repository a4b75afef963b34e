package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/lacroixthomas/spotify-app/internal/api"
	"github.com/lacroixthomas/spotify-app/internal/session"
	"github.com/lacroixthomas/spotify-app/internal/shared"
	"github.com/lacroixthomas/spotify-app/internal/state"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	session *session.Manager
	client  *api.Client
	state   *state.Store
	logger  *log.Logger
	output  io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Session *session.Manager
	Client  *api.Client
	State   *state.Store
	Logger  *log.Logger
	Output  io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Client == nil {
		opts.Client = api.NewClient(opts.Config.API.BaseURL, nil, opts.Config.API.RateLimit, opts.Logger)
	}
	if opts.State == nil {
		opts.State = state.NewStore(opts.Client, opts.Logger)
	}

	return &Runner{
		config:  opts.Config,
		session: opts.Session,
		client:  opts.Client,
		state:   opts.State,
		logger:  opts.Logger,
		output:  opts.Output,
	}
}

// SetLogger replaces the runner's logger, used when the TUI redirects logs to a file.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, userCommand, playerCommand, playlistCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// credential returns the active session credential, restoring it from the
// store on first use so one-shot commands in a fresh process pick up the
// session persisted by a previous login. Returns ErrNotAuthenticated when
// neither source yields a credential.
func (r *Runner) credential() (string, error) {
	if r.session == nil {
		return "", fmt.Errorf("%w: session manager not initialized", shared.ErrNotAuthenticated)
	}
	if credential := r.session.Credential(); credential != "" {
		return credential, nil
	}

	credential, err := r.session.Acquire("")
	if err != nil {
		r.logger.Warnf("failed to read credential store %v", err)
	}
	if credential != "" {
		return credential, nil
	}
	return "", fmt.Errorf("%w: run `spotify-app auth login` first", shared.ErrNotAuthenticated)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
