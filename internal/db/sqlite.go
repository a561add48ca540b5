package db

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/quietriver/kino/internal/shared"
)

// sqliteDB is the embedded backend. SQLite's native placeholder syntax is the
// generic '?', so translation is the identity, and the driver reports last
// insert ids.
type sqliteDB struct {
	session
}

var _ DB = (*sqliteDB)(nil)

func openSQLite(cfg *shared.Config, logger *log.Logger) (*sqliteDB, error) {
	path := cfg.Database.Path
	if path == "" {
		path = "kino.db"
	}

	conn, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	configurePool(conn, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	if path == ":memory:" || strings.Contains(path, "mode=memory") {
		// every pooled connection would otherwise see its own empty database
		conn.SetMaxOpenConns(1)
	}

	return &sqliteDB{session{
		db:              conn,
		logger:          shared.WithLogger(logger, "backend", "sqlite"),
		translate:       passthrough,
		reportsInsertID: true,
	}}, nil
}

// RawExec runs a multi-statement script directly against the database. The
// schema bootstrap is its one caller; everything else goes through Statements.
func (d *sqliteDB) RawExec(script string) error {
	if _, err := d.db.Exec(script); err != nil {
		return fmt.Errorf("raw execution failed: %w", err)
	}
	return nil
}

func (d *sqliteDB) Close() error {
	return d.db.Close()
}
