package store

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/quietriver/kino/internal/db"
	"github.com/quietriver/kino/internal/shared"
)

// HistoryStore persists watch history. Each playback event lands in two
// tables: an append-only watch_history log and a watch_progress row holding
// the latest resume position per user and media item.
type HistoryStore struct {
	db     db.DB
	logger *log.Logger
}

// NewHistoryStore creates a HistoryStore over the given database.
func NewHistoryStore(d db.DB, logger *log.Logger) *HistoryStore {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &HistoryStore{db: d, logger: shared.WithLogger(logger, "store", "history")}
}

// Record appends a playback event and upserts the resume position in one
// transaction, so the log and the progress row never drift apart.
func (s *HistoryStore) Record(userID, mediaID string, positionSecs int64) error {
	if userID == "" || mediaID == "" {
		return fmt.Errorf("%w: user and media ids", shared.ErrMissingArgument)
	}

	now := shared.NowMillis()
	_, err := s.db.Batch(
		s.db.Statement(`
			INSERT INTO watch_history (id, user_id, media_id, position_secs, watched_at)
			VALUES (?, ?, ?, ?, ?)
		`).Bind(shared.GenerateID(), userID, mediaID, positionSecs, now),
		s.db.Statement(`
			INSERT INTO watch_progress (user_id, media_id, position_secs, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (user_id, media_id) DO UPDATE
			SET position_secs = excluded.position_secs, updated_at = excluded.updated_at
		`).Bind(userID, mediaID, positionSecs, now),
	)
	if err != nil {
		return fmt.Errorf("failed to record watch event: %w", err)
	}
	return nil
}

// Recent returns a user's latest playback events, newest first. A
// non-positive limit defaults to 20.
func (s *HistoryStore) Recent(userID string, limit int) ([]WatchEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	res := s.db.Statement(`
		SELECT id, user_id, media_id, position_secs, watched_at
		FROM watch_history
		WHERE user_id = ?
		ORDER BY watched_at DESC, id
		LIMIT ?
	`).Bind(userID, limit).All()
	if !res.Success {
		return nil, fmt.Errorf("failed to list watch history: %s", res.Error)
	}

	entries := make([]WatchEntry, 0, len(res.Rows))
	for _, row := range res.Rows {
		entries = append(entries, WatchEntry{
			ID:           rowString(row, "id"),
			UserID:       rowString(row, "user_id"),
			MediaID:      rowString(row, "media_id"),
			PositionSecs: rowInt64(row, "position_secs"),
			WatchedAt:    rowInt64(row, "watched_at"),
		})
	}
	return entries, nil
}

// Progress returns the resume position for a media item. The second return is
// false when the user has never watched it.
func (s *HistoryStore) Progress(userID, mediaID string) (int64, bool) {
	v, ok := s.db.Statement(`
		SELECT position_secs FROM watch_progress WHERE user_id = ? AND media_id = ?
	`).Bind(userID, mediaID).OneValue("position_secs")
	if !ok {
		return 0, false
	}
	return asInt64(v), true
}

// Clear wipes a user's history log and resume positions together, returning
// the number of history rows removed.
func (s *HistoryStore) Clear(userID string) (int64, error) {
	results, err := s.db.Batch(
		s.db.Statement("DELETE FROM watch_history WHERE user_id = ?").Bind(userID),
		s.db.Statement("DELETE FROM watch_progress WHERE user_id = ?").Bind(userID),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to clear watch history: %w", err)
	}
	return results[0].Changed, nil
}
