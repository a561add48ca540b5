// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/quietriver/kino/internal/db"
	"github.com/quietriver/kino/internal/schema"
	"github.com/quietriver/kino/internal/shared"
)

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// NewTestDB opens a file-backed sqlite database under the test's temp
// directory with the kino schema applied.
func NewTestDB(t *testing.T) db.DB {
	t.Helper()

	cfg := shared.DefaultConfig()
	cfg.Database.Path = filepath.Join(t.TempDir(), "kino_test.db")
	logger := shared.NewLogger(io.Discard)

	d, err := db.Open(cfg, logger)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	if err := schema.Apply(d, "sqlite", logger); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}
	return d
}
