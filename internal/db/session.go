package db

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
)

// session carries the execution machinery shared by both backends: the sqlx
// handle, the placeholder translation for the backend's native syntax, and
// the logger that absorbs suppressed errors.
type session struct {
	db              *sqlx.DB
	logger          *log.Logger
	translate       func(string) string
	reportsInsertID bool
}

// Statement creates a Statement for the given query text bound to this
// backend. The text is immutable; parameters are supplied via Bind.
func (s *session) Statement(text string) *Statement {
	return &Statement{text: text, sess: s}
}

// queryRows is the row-shaped execution primitive under One, OneValue and All.
func (s *session) queryRows(text string, args []any) ([]Row, error) {
	rows, err := s.db.Queryx(s.translate(text), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Row{}
	for rows.Next() {
		row := Row{}
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		out = append(out, normalizeRow(row))
	}
	return out, rows.Err()
}

// execOnce is the metadata-shaped execution primitive under Write and Exec.
func (s *session) execOnce(text string, args []any) (changed, lastID int64, err error) {
	res, err := s.db.Exec(s.translate(text), args...)
	if err != nil {
		return 0, UnknownInsertID, err
	}
	return s.describe(res)
}

// describe extracts rows-affected and, where the backend supports it, the
// last insert id from a driver result.
func (s *session) describe(res sql.Result) (changed, lastID int64, err error) {
	changed, err = res.RowsAffected()
	if err != nil {
		return 0, UnknownInsertID, err
	}

	lastID = UnknownInsertID
	if s.reportsInsertID {
		if id, err := res.LastInsertId(); err == nil {
			lastID = id
		}
	}
	return changed, lastID, nil
}

// Batch executes the statements, in order, inside one transaction held on a
// single pooled connection. All statements commit together or the first
// failure rolls everything back and is returned with no partial results. The
// connection returns to the pool on every path; a rollback failure is logged
// and never masks the error that triggered it.
func (s *session) Batch(stmts ...*Statement) ([]Result, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	results := make([]Result, 0, len(stmts))
	for i, stmt := range stmts {
		res, err := tx.Exec(s.translate(stmt.text), stmt.args...)
		if err != nil {
			s.rollback(tx)
			return nil, fmt.Errorf("batch statement %d failed: %w", i+1, err)
		}

		changed, lastID, err := s.describe(res)
		if err != nil {
			s.rollback(tx)
			return nil, fmt.Errorf("batch statement %d failed: %w", i+1, err)
		}

		results = append(results, Result{Success: true, Changed: changed, LastInsertID: lastID})
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit batch: %w", err)
	}
	return results, nil
}

func (s *session) rollback(tx *sqlx.Tx) {
	if err := tx.Rollback(); err != nil {
		s.logger.Error("rollback failed", "error", err)
	}
}

// normalizeRow converts driver []byte values to strings so rows scan to the
// same Go types on both backends.
func normalizeRow(row Row) Row {
	for k, v := range row {
		if b, ok := v.([]byte); ok {
			row[k] = string(b)
		}
	}
	return row
}

// configurePool applies the configured connection limits to a handle.
func configurePool(conn *sqlx.DB, maxOpen, maxIdle int) {
	if maxOpen > 0 {
		conn.SetMaxOpenConns(maxOpen)
	}
	if maxIdle > 0 {
		conn.SetMaxIdleConns(maxIdle)
	}
}
