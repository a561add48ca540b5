package db

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/quietriver/kino/internal/shared"
)

// DB is the uniform contract data-access code is written against. It exposes
// exactly three capabilities: obtaining a Statement for given text, running a
// batch of Statements transactionally, and raw script execution (which the
// network backend does not support).
type DB interface {
	// Statement returns a Statement for the given query text.
	Statement(text string) *Statement

	// Batch executes the statements atomically, in order, on one connection.
	Batch(stmts ...*Statement) ([]Result, error)

	// RawExec runs a multi-statement SQL script outside the prepared-statement
	// path. Only the embedded backend supports it; the network backend returns
	// shared.ErrRawExecUnsupported and callers there must issue individual
	// prepared statements instead.
	RawExec(script string) error

	// Close releases the backend's resources.
	Close() error
}

// Open constructs the backend selected by cfg.Database.Backend. A nil logger
// defaults to the shared stderr logger.
func Open(cfg *shared.Config, logger *log.Logger) (DB, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	switch cfg.Database.Backend {
	case "sqlite", "":
		return openSQLite(cfg, logger)
	case "postgres":
		return openPostgres(cfg, logger)
	default:
		return nil, fmt.Errorf("%w: %q", shared.ErrUnsupportedBackend, cfg.Database.Backend)
	}
}
