package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/quietriver/kino/internal/schema"
	"github.com/quietriver/kino/internal/shared"
)

// Bootstrap creates the schema on the configured backend and optionally seeds
// the administrator account.
func (r *Runner) Bootstrap(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		}
	}
	r.loadConfig(cmd)

	if err := r.open(); err != nil {
		return err
	}

	r.logger.Info("bootstrapping schema", "backend", r.config.Database.Backend)
	if err := schema.Apply(r.database, r.config.Database.Backend, r.logger); err != nil {
		return fmt.Errorf("bootstrap failed: %w", err)
	}

	adminUser := cmd.String("admin-user")
	adminPassword := cmd.String("admin-password")
	if adminUser != "" {
		if adminPassword == "" {
			return fmt.Errorf("%w: --admin-password is required with --admin-user", shared.ErrMissingArgument)
		}
		if err := schema.SeedAdmin(r.database, adminUser, adminPassword); err != nil {
			return fmt.Errorf("failed to seed admin: %w", err)
		}
		r.logger.Info("admin account ready", "username", adminUser)
	}

	return r.writePlainln("✓ Database bootstrapped")
}

// bootstrapCommand initializes the database schema
func bootstrapCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "bootstrap",
		Usage: "Create the kino schema and seed the admin account",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:  "admin-user",
				Usage: "Administrator username to seed (skipped when empty)",
			},
			&cli.StringFlag{
				Name:  "admin-password",
				Usage: "Administrator password to hash and store",
			},
		},
		Action: r.Bootstrap,
	}
}
