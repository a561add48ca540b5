package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// Status probes the configured backend with a trivial statement.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd)

	if err := r.open(); err != nil {
		return err
	}

	if _, ok := r.database.Statement("SELECT 1 AS ok").One(); !ok {
		return fmt.Errorf("database probe failed (backend %q)", r.config.Database.Backend)
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{
			"backend": r.config.Database.Backend,
			"ok":      true,
		}, cmd.Bool("pretty"))
	}

	r.writePlain("✓ Database reachable (%s backend)\n", r.config.Database.Backend)
	return nil
}

// statusCommand reports backend connectivity
func statusCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Check database connectivity",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Status,
	}
}
