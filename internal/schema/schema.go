// Package schema holds the one-shot bootstrap: embedded dialect scripts that
// create the kino tables plus the idempotent administrator seed. It is plain
// sequential setup code, not a migration framework; scripts are re-runnable
// and there is no version tracking.
package schema

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/quietriver/kino/internal/db"
	"github.com/quietriver/kino/internal/shared"
)

//go:embed sql/*.sql
var scripts embed.FS

// Apply creates the kino schema on the given database. The embedded backend
// takes the whole script through the raw execution path; the network backend
// has no raw path, so the script is split and each piece runs as its own
// prepared statement.
func Apply(d db.DB, backend string, logger *log.Logger) error {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	script, err := loadScript(backend)
	if err != nil {
		return err
	}

	if err := d.RawExec(script); err != nil {
		if !errors.Is(err, shared.ErrRawExecUnsupported) {
			return fmt.Errorf("failed to apply schema: %w", err)
		}

		for _, stmt := range SplitStatements(script) {
			if res := d.Statement(stmt).Exec(); !res.Success {
				return fmt.Errorf("failed to apply schema statement: %s", res.Error)
			}
		}
	}

	logger.Info("schema applied")
	return nil
}

// SeedAdmin idempotently creates the administrator account. Re-running the
// bootstrap against an existing account is a no-op, never a duplicate-key
// error.
func SeedAdmin(d db.DB, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: admin username and password", shared.ErrMissingArgument)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	res := d.Statement(`
		INSERT INTO users (id, username, password_hash, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (username) DO NOTHING
	`).Bind(shared.GenerateID(), username, string(hash), shared.NowMillis()).Write()
	if !res.Success {
		return fmt.Errorf("failed to seed admin user: %s", res.Error)
	}

	return nil
}

// loadScript reads the embedded bootstrap script for the backend.
func loadScript(backend string) (string, error) {
	name := "sql/sqlite.sql"
	if backend == "postgres" {
		name = "sql/postgres.sql"
	}

	data, err := scripts.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to read bootstrap script %s: %w", name, err)
	}
	return string(data), nil
}

// SplitStatements splits a SQL script into individual executable statements,
// stripping comments and blank pieces.
func SplitStatements(script string) []string {
	var out []string
	for _, stmt := range strings.Split(script, ";") {
		stmt = strings.TrimSpace(stripComments(stmt))
		if stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// stripComments removes single-line SQL comments from a statement.
func stripComments(stmt string) string {
	lines := strings.Split(stmt, "\n")
	var result []string
	for _, line := range lines {
		if idx := strings.Index(line, "--"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}
