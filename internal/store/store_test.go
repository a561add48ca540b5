package store

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/quietriver/kino/internal/db"
	"github.com/quietriver/kino/internal/schema"
	"github.com/quietriver/kino/internal/shared"
)

func newTestDB(t *testing.T) (db.DB, *log.Logger) {
	t.Helper()

	cfg := shared.DefaultConfig()
	cfg.Database.Path = filepath.Join(t.TempDir(), "store_test.db")
	logger := shared.NewLogger(io.Discard)

	d, err := db.Open(cfg, logger)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	if err := schema.Apply(d, "sqlite", logger); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}
	return d, logger
}
