package store

import (
	"errors"
	"testing"

	"github.com/quietriver/kino/internal/shared"
)

func TestUserStore(t *testing.T) {
	d, logger := newTestDB(t)
	users := NewUserStore(d, logger)

	t.Run("Create", func(t *testing.T) {
		user, err := users.Create("alice", "s3cret")
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if user.ID == "" {
			t.Error("expected a generated id")
		}
		if user.PasswordHash == "s3cret" {
			t.Error("password stored in the clear")
		}

		t.Run("duplicate username", func(t *testing.T) {
			if _, err := users.Create("alice", "other"); !errors.Is(err, shared.ErrUserExists) {
				t.Errorf("expected ErrUserExists, got %v", err)
			}
		})

		t.Run("missing arguments", func(t *testing.T) {
			if _, err := users.Create("", ""); !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected ErrMissingArgument, got %v", err)
			}
		})
	})

	t.Run("GetByUsername", func(t *testing.T) {
		user, ok := users.GetByUsername("alice")
		if !ok {
			t.Fatal("expected alice to exist")
		}
		if user.Username != "alice" {
			t.Errorf("unexpected user: %+v", user)
		}

		if _, ok := users.GetByUsername("nobody"); ok {
			t.Error("expected not-found for unknown username")
		}
	})

	t.Run("Authenticate", func(t *testing.T) {
		if _, err := users.Authenticate("alice", "s3cret"); err != nil {
			t.Errorf("expected successful authentication, got %v", err)
		}

		if _, err := users.Authenticate("alice", "wrong"); !errors.Is(err, shared.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}

		// unknown accounts are indistinguishable from wrong passwords
		if _, err := users.Authenticate("nobody", "s3cret"); !errors.Is(err, shared.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("UpdatePassword", func(t *testing.T) {
		if err := users.UpdatePassword("alice", "n3w-s3cret"); err != nil {
			t.Fatalf("update failed: %v", err)
		}

		if _, err := users.Authenticate("alice", "n3w-s3cret"); err != nil {
			t.Errorf("new password rejected: %v", err)
		}
		if _, err := users.Authenticate("alice", "s3cret"); err == nil {
			t.Error("old password still accepted")
		}

		if err := users.UpdatePassword("nobody", "pw"); !errors.Is(err, shared.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		if _, err := users.Create("bob", "pw"); err != nil {
			t.Fatalf("create failed: %v", err)
		}

		all, err := users.List()
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(all) != 2 {
			t.Errorf("expected 2 users, got %d", len(all))
		}
	})

	t.Run("Delete removes the account and its data", func(t *testing.T) {
		alice, _ := users.GetByUsername("alice")

		history := NewHistoryStore(d, logger)
		if err := history.Record(alice.ID, "m-1", 90); err != nil {
			t.Fatalf("record failed: %v", err)
		}

		if err := users.Delete("alice"); err != nil {
			t.Fatalf("delete failed: %v", err)
		}

		if _, ok := users.GetByUsername("alice"); ok {
			t.Error("alice should be gone")
		}
		if entries, _ := history.Recent(alice.ID, 10); len(entries) != 0 {
			t.Error("watch history should be gone with the account")
		}

		if err := users.Delete("alice"); !errors.Is(err, shared.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})
}
