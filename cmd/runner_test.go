package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/quietriver/kino/internal/shared"
	tu "github.com/quietriver/kino/internal/testing"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			database := tu.NewTestDB(t)

			runner := NewRunner(RunnerOpts{
				Config:   config,
				Logger:   logger,
				Output:   output,
				Database: database,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.database != database {
				t.Error("expected database to be set")
			}
			if runner.users == nil || runner.favorites == nil || runner.history == nil {
				t.Error("expected stores to be built for an injected database")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
			if runner.output == nil {
				t.Error("expected default output to be set")
			}
			if runner.database != nil {
				t.Error("database should stay unopened until first use")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes compact JSON", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("writeJSON failed: %v", err)
			}
			if got := output.String(); got != "{\"key\":\"value\"}\n" {
				t.Errorf("unexpected output: %q", got)
			}
		})

		t.Run("pretty-prints", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("writeJSON failed: %v", err)
			}
			if !strings.Contains(output.String(), "  \"key\": \"value\"") {
				t.Errorf("expected indented output, got %q", output.String())
			}
		})

		t.Run("propagates write failures", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err == nil {
				t.Error("expected write error")
			}
		})

		t.Run("fails on the trailing newline", func(t *testing.T) {
			output := &bytes.Buffer{}
			limited := tu.NewLimitedWriter(1, 0, output)
			runner := NewRunner(RunnerOpts{Output: &limited})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err == nil {
				t.Error("expected write error on newline")
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runner.writePlain("hello %s\n", "world"); err != nil {
			t.Fatalf("writePlain failed: %v", err)
		}
		if err := runner.writePlainln("done: %d", 3); err != nil {
			t.Fatalf("writePlainln failed: %v", err)
		}
		if got := output.String(); got != "hello world\n\ndone: 3\n" {
			t.Errorf("unexpected output: %q", got)
		}

		runner = NewRunner(RunnerOpts{Output: &tu.FWriter{}})
		if err := runner.writePlain("x"); err == nil {
			t.Error("expected write error")
		}
	})

	t.Run("commands", func(t *testing.T) {
		newApp := func(t *testing.T) (*cli.Command, *bytes.Buffer) {
			t.Helper()
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{
				Logger:   shared.NewLogger(output),
				Output:   output,
				Database: tu.NewTestDB(t),
			})
			return &cli.Command{Name: "kino", Commands: runner.register()}, output
		}

		t.Run("user create and list", func(t *testing.T) {
			app, output := newApp(t)
			ctx := context.Background()

			if err := app.Run(ctx, []string{"kino", "user", "create", "alice", "--password", "s3cret"}); err != nil {
				t.Fatalf("user create failed: %v", err)
			}
			if !strings.Contains(output.String(), "User created: alice") {
				t.Errorf("unexpected output: %q", output.String())
			}

			output.Reset()
			if err := app.Run(ctx, []string{"kino", "user", "list"}); err != nil {
				t.Fatalf("user list failed: %v", err)
			}
			if !strings.Contains(output.String(), "alice") {
				t.Errorf("expected alice in listing, got %q", output.String())
			}
		})

		t.Run("favorite add and list", func(t *testing.T) {
			app, output := newApp(t)
			ctx := context.Background()

			if err := app.Run(ctx, []string{"kino", "user", "create", "bob", "--password", "pw"}); err != nil {
				t.Fatalf("user create failed: %v", err)
			}

			if err := app.Run(ctx, []string{"kino", "favorite", "add", "bob", "m-42"}); err != nil {
				t.Fatalf("favorite add failed: %v", err)
			}

			output.Reset()
			if err := app.Run(ctx, []string{"kino", "favorite", "list", "bob"}); err != nil {
				t.Fatalf("favorite list failed: %v", err)
			}
			if !strings.Contains(output.String(), "m-42") {
				t.Errorf("expected m-42 in listing, got %q", output.String())
			}
		})

		t.Run("unknown user fails", func(t *testing.T) {
			app, _ := newApp(t)

			err := app.Run(context.Background(), []string{"kino", "favorite", "list", "nobody"})
			if err == nil {
				t.Fatal("expected an error for an unknown user")
			}
		})
	})
}
