package schema

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/quietriver/kino/internal/db"
	"github.com/quietriver/kino/internal/shared"
)

func newTestDB(t *testing.T) db.DB {
	t.Helper()

	cfg := shared.DefaultConfig()
	cfg.Database.Path = filepath.Join(t.TempDir(), "schema_test.db")

	d, err := db.Open(cfg, shared.NewLogger(io.Discard))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestApply(t *testing.T) {
	d := newTestDB(t)
	logger := shared.NewLogger(io.Discard)

	if err := Apply(d, "sqlite", logger); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	for _, table := range []string{"users", "favorites", "watch_history", "watch_progress"} {
		res := d.Statement("SELECT COUNT(*) AS n FROM " + table).All()
		if !res.Success {
			t.Errorf("table %s missing: %s", table, res.Error)
		}
	}

	// bootstrap is re-runnable
	if err := Apply(d, "sqlite", logger); err != nil {
		t.Fatalf("second apply failed: %v", err)
	}
}

func TestSeedAdmin(t *testing.T) {
	d := newTestDB(t)
	if err := Apply(d, "sqlite", shared.NewLogger(io.Discard)); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	t.Run("creates the admin once", func(t *testing.T) {
		if err := SeedAdmin(d, "admin", "hunter2"); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
		if err := SeedAdmin(d, "admin", "hunter2"); err != nil {
			t.Fatalf("second seed must be a no-op, got: %v", err)
		}

		v, ok := d.Statement("SELECT COUNT(*) AS n FROM users WHERE username = ?").Bind("admin").OneValue("n")
		if !ok || v != int64(1) {
			t.Errorf("expected exactly one admin row, got %v (found %v)", v, ok)
		}
	})

	t.Run("stores a hash, not the password", func(t *testing.T) {
		v, ok := d.Statement("SELECT password_hash FROM users WHERE username = ?").Bind("admin").OneValue("password_hash")
		if !ok {
			t.Fatal("admin row missing")
		}
		if v == "hunter2" {
			t.Error("password stored in the clear")
		}
	})

	t.Run("rejects empty credentials", func(t *testing.T) {
		if err := SeedAdmin(d, "", ""); err == nil {
			t.Error("expected an error for empty credentials")
		}
	})
}

func TestSplitStatements(t *testing.T) {
	script := `
-- leading comment
CREATE TABLE a (id TEXT); -- trailing comment

CREATE TABLE b (
    id TEXT -- inline comment
);
`
	stmts := SplitStatements(script)
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d: %v", len(stmts), stmts)
	}
	for _, s := range stmts {
		if s == "" {
			t.Error("empty statement survived splitting")
		}
	}
}
