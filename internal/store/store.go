package store

import "github.com/quietriver/kino/internal/db"

// User is a kino account. PasswordHash never leaves the process.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	CreatedAt    int64  `json:"created_at"`
}

// Favorite marks a media item a user has favorited.
type Favorite struct {
	UserID    string `json:"user_id"`
	MediaID   string `json:"media_id"`
	CreatedAt int64  `json:"created_at"`
}

// WatchEntry is one playback event in a user's watch history.
type WatchEntry struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	MediaID      string `json:"media_id"`
	PositionSecs int64  `json:"position_secs"`
	WatchedAt    int64  `json:"watched_at"`
}

// rowString reads a string column from a uniform row, tolerating absence.
func rowString(r db.Row, column string) string {
	if v, ok := r[column].(string); ok {
		return v
	}
	return ""
}

// rowInt64 reads an integer column from a uniform row. Drivers disagree on
// numeric scan types, so a few are accepted.
func rowInt64(r db.Row, column string) int64 {
	return asInt64(r[column])
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}
