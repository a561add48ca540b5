package store

import (
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/quietriver/kino/internal/db"
	"github.com/quietriver/kino/internal/shared"
)

// UserStore persists kino accounts.
type UserStore struct {
	db     db.DB
	logger *log.Logger
}

// NewUserStore creates a UserStore over the given database.
func NewUserStore(d db.DB, logger *log.Logger) *UserStore {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &UserStore{db: d, logger: shared.WithLogger(logger, "store", "users")}
}

// Create registers a new account with a bcrypt password hash and a
// client-generated id. A taken username returns shared.ErrUserExists; the
// on-conflict insert means a concurrent duplicate is never a raised
// duplicate-key error.
func (s *UserStore) Create(username, password string) (*User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password", shared.ErrMissingArgument)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		ID:           shared.GenerateID(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    shared.NowMillis(),
	}

	res := s.db.Statement(`
		INSERT INTO users (id, username, password_hash, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (username) DO NOTHING
	`).Bind(user.ID, user.Username, user.PasswordHash, user.CreatedAt).Write()
	if !res.Success {
		return nil, fmt.Errorf("failed to create user: %s", res.Error)
	}
	if res.Changed == 0 {
		return nil, shared.ErrUserExists
	}

	s.logger.Info("user created", "username", username)
	return user, nil
}

// GetByUsername looks up an account. The second return is false when the
// account does not exist or the lookup failed.
func (s *UserStore) GetByUsername(username string) (*User, bool) {
	row, ok := s.db.Statement(`
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = ?
	`).Bind(username).One()
	if !ok {
		return nil, false
	}
	return userFromRow(row), true
}

// Authenticate verifies a username/password pair. Unknown usernames and wrong
// passwords both return shared.ErrInvalidCredentials so callers cannot probe
// for accounts.
func (s *UserStore) Authenticate(username, password string) (*User, error) {
	user, ok := s.GetByUsername(username)
	if !ok {
		return nil, shared.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}

// UpdatePassword rehashes and stores a new password for an existing account.
func (s *UserStore) UpdatePassword(username, password string) error {
	if password == "" {
		return fmt.Errorf("%w: password", shared.ErrMissingArgument)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	res := s.db.Statement(`
		UPDATE users SET password_hash = ? WHERE username = ?
	`).Bind(string(hash), username).Write()
	if !res.Success {
		return fmt.Errorf("failed to update password: %s", res.Error)
	}
	if res.Changed == 0 {
		return shared.ErrUserNotFound
	}
	return nil
}

// List returns every account ordered by creation time.
func (s *UserStore) List() ([]User, error) {
	res := s.db.Statement(`
		SELECT id, username, password_hash, created_at
		FROM users
		ORDER BY created_at, username
	`).All()
	if !res.Success {
		return nil, fmt.Errorf("failed to list users: %s", res.Error)
	}

	users := make([]User, 0, len(res.Rows))
	for _, row := range res.Rows {
		users = append(users, *userFromRow(row))
	}
	return users, nil
}

// Delete removes an account along with its favorites and watch history, all
// in one transaction.
func (s *UserStore) Delete(username string) error {
	user, ok := s.GetByUsername(username)
	if !ok {
		return shared.ErrUserNotFound
	}

	_, err := s.db.Batch(
		s.db.Statement("DELETE FROM favorites WHERE user_id = ?").Bind(user.ID),
		s.db.Statement("DELETE FROM watch_history WHERE user_id = ?").Bind(user.ID),
		s.db.Statement("DELETE FROM watch_progress WHERE user_id = ?").Bind(user.ID),
		s.db.Statement("DELETE FROM users WHERE id = ?").Bind(user.ID),
	)
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", username, err)
	}

	s.logger.Info("user deleted", "username", username)
	return nil
}

func userFromRow(row db.Row) *User {
	return &User{
		ID:           rowString(row, "id"),
		Username:     rowString(row, "username"),
		PasswordHash: rowString(row, "password_hash"),
		CreatedAt:    rowInt64(row, "created_at"),
	}
}
