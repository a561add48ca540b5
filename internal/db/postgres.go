package db

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/quietriver/kino/internal/shared"
)

var (
	poolMu sync.Mutex
	pool   *sqlx.DB
)

// acquirePool lazily creates the process-wide postgres pool from the
// environment-supplied connection string and reuses it for the rest of the
// process lifetime. At most one pool exists at a time.
func acquirePool(cfg *shared.Config) (*sqlx.DB, error) {
	poolMu.Lock()
	defer poolMu.Unlock()

	if pool != nil {
		return pool, nil
	}

	dsn := shared.DatabaseURL()
	if dsn == "" {
		return nil, fmt.Errorf("%w: set %s", shared.ErrMissingDSN, shared.EnvDatabaseURL)
	}

	conn, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	configurePool(conn, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	pool = conn
	return pool, nil
}

// ResetPool closes and discards the process-wide postgres pool so the next
// adapter rebuilds it. Test isolation hook; production code never calls it.
func ResetPool() {
	poolMu.Lock()
	defer poolMu.Unlock()

	if pool != nil {
		pool.Close()
		pool = nil
	}
}

// postgresDB is the network backend. Statement text is rewritten from generic
// '?' placeholders to native $1..$n before it goes over the wire, and the
// driver never reports last insert ids.
type postgresDB struct {
	session
}

var _ DB = (*postgresDB)(nil)

func openPostgres(cfg *shared.Config, logger *log.Logger) (*postgresDB, error) {
	conn, err := acquirePool(cfg)
	if err != nil {
		return nil, err
	}

	return &postgresDB{session{
		db:              conn,
		logger:          shared.WithLogger(logger, "backend", "postgres"),
		translate:       TranslatePlaceholders,
		reportsInsertID: false,
	}}, nil
}

// RawExec is not part of the uniform contract for the network backend.
// Callers needing schema DDL here must issue individual prepared statements.
func (d *postgresDB) RawExec(script string) error {
	return fmt.Errorf("%w (postgres backend)", shared.ErrRawExecUnsupported)
}

// Close releases this adapter's reference. The process-wide pool stays open
// for reuse; ResetPool is the only way to tear it down.
func (d *postgresDB) Close() error {
	return nil
}
