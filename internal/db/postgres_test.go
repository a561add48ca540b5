package db

import (
	"errors"
	"io"
	"testing"

	"github.com/quietriver/kino/internal/shared"
)

func TestPostgresPool(t *testing.T) {
	t.Run("missing connection string is a configuration error", func(t *testing.T) {
		t.Setenv(shared.EnvDatabaseURL, "")
		t.Setenv("DATABASE_URL", "")
		ResetPool()

		cfg := shared.DefaultConfig()
		cfg.Database.Backend = "postgres"

		if _, err := Open(cfg, shared.NewLogger(io.Discard)); !errors.Is(err, shared.ErrMissingDSN) {
			t.Errorf("expected ErrMissingDSN, got %v", err)
		}
	})

	t.Run("ResetPool is safe with no pool", func(t *testing.T) {
		ResetPool()
		ResetPool()
	})
}

func TestPostgresRawExec(t *testing.T) {
	d := &postgresDB{}

	if err := d.RawExec("CREATE TABLE nope (id INTEGER)"); !errors.Is(err, shared.ErrRawExecUnsupported) {
		t.Errorf("expected ErrRawExecUnsupported, got %v", err)
	}
}
