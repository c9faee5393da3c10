package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/RedDocMD/cc2lc/internal/repositories"
	"github.com/RedDocMD/cc2lc/internal/services"
	"github.com/RedDocMD/cc2lc/internal/shared"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	logger *log.Logger
	output io.Writer

	// Prebuilt collaborators, injected by tests; built from config when nil.
	source services.GamesSource
	sink   services.GameSink
	db     *sql.DB
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Output io.Writer
	Source services.GamesSource
	Sink   services.GameSink
	DB     *sql.DB
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

	return &Runner{
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
		source: opts.Source,
		sink:   opts.Sink,
		db:     opts.DB,
	}
}

// loadConfig refreshes the runner's config from the given path, keeping the
// current config when the file is absent.
func (r *Runner) loadConfig(path string) {
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Warn("failed to load config, keeping current", "path", path, "error", err)
		return
	}
	r.config = config
}

// openStore opens the configured database, applies pending migrations, and
// returns the store with a release function. The store handle lives for one
// command invocation; the release runs at command exit.
func (r *Runner) openStore() (*repositories.SQLStore, func(), error) {
	if r.db != nil {
		return repositories.NewSQLStore(r.db), func() {}, nil
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return repositories.NewSQLStore(db), func() { db.Close() }, nil
}

// buildSource returns the injected source or a chess.com client from config.
func (r *Runner) buildSource() services.GamesSource {
	if r.source != nil {
		return r.source
	}

	src := r.config.Source
	return services.NewChessComService(src.BaseURL, src.Username, src.RateLimit, nil)
}

// buildSink returns the injected sink or a lichess client from config,
// reading the API token from the environment.
func (r *Runner) buildSink() (services.GameSink, error) {
	if r.sink != nil {
		return r.sink, nil
	}

	dest := r.config.Destination
	token, err := dest.Token()
	if err != nil {
		return nil, err
	}

	backoff := services.DefaultImportBackoff
	if dest.BackoffSeconds > 0 {
		backoff = time.Duration(dest.BackoffSeconds) * time.Second
	}

	return services.NewLichessService(dest.BaseURL, services.OAuthClient(token), backoff, r.logger), nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, syncCommand, archivesCommand, gamesCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
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

	if _, err := r.output.Write(append(output, '\n')); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
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
