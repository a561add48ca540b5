package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/quietriver/kino/internal/cache"
	"github.com/quietriver/kino/internal/db"
	"github.com/quietriver/kino/internal/shared"
	"github.com/quietriver/kino/internal/store"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config    *shared.Config
	logger    *log.Logger
	output    io.Writer
	database  db.DB
	users     *store.UserStore
	favorites *store.FavoriteStore
	history   *store.HistoryStore
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config   *shared.Config
	Logger   *log.Logger
	Output   io.Writer
	Database db.DB
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

	r := &Runner{
		config:   opts.Config,
		logger:   opts.Logger,
		output:   opts.Output,
		database: opts.Database,
	}
	if r.database != nil {
		r.buildStores()
	}
	return r
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		bootstrapCommand, statusCommand, userCommand, favoriteCommand, historyCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// open lazily connects to the configured backend. The network backend's pool
// (and its missing-DSN configuration error) materializes here, on first use.
func (r *Runner) open() error {
	if r.database != nil {
		return nil
	}

	d, err := db.Open(r.config, r.logger)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	r.database = d
	r.buildStores()
	return nil
}

func (r *Runner) buildStores() {
	listCache := cache.New[[]store.Favorite](r.config.Cache, r.logger)
	r.users = store.NewUserStore(r.database, r.logger)
	r.favorites = store.NewFavoriteStore(r.database, listCache, r.logger)
	r.history = store.NewHistoryStore(r.database, r.logger)
}

// loadConfig replaces the runner's config from the command's --config flag
// when the file exists.
func (r *Runner) loadConfig(cmd *cli.Command) {
	path := cmd.String("config")
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	if config, err := shared.LoadConfig(path); err == nil {
		r.config = config
	} else {
		r.logger.Warn("failed to load config, keeping current", "path", path, "error", err)
	}
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
