package store

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/quietriver/kino/internal/cache"
	"github.com/quietriver/kino/internal/db"
	"github.com/quietriver/kino/internal/shared"
)

// FavoriteStore persists per-user favorites. List results are served through
// a TTL cache that Add and Remove invalidate.
type FavoriteStore struct {
	db     db.DB
	cache  *cache.Cache[[]Favorite]
	logger *log.Logger
}

// NewFavoriteStore creates a FavoriteStore. The cache is required; construct
// one from the shared cache config.
func NewFavoriteStore(d db.DB, c *cache.Cache[[]Favorite], logger *log.Logger) *FavoriteStore {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &FavoriteStore{db: d, cache: c, logger: shared.WithLogger(logger, "store", "favorites")}
}

// Add favorites a media item for a user. Re-favoriting is a no-op, never a
// duplicate-key error; the return reports whether a row was actually added.
func (s *FavoriteStore) Add(userID, mediaID string) (bool, error) {
	res := s.db.Statement(`
		INSERT INTO favorites (user_id, media_id, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id, media_id) DO NOTHING
	`).Bind(userID, mediaID, shared.NowMillis()).Write()
	if !res.Success {
		return false, fmt.Errorf("failed to add favorite: %s", res.Error)
	}

	if res.Changed > 0 {
		s.cache.Invalidate(favoritesKey(userID))
	}
	return res.Changed > 0, nil
}

// Remove unfavorites a media item. The return reports whether a row existed.
func (s *FavoriteStore) Remove(userID, mediaID string) (bool, error) {
	res := s.db.Statement(`
		DELETE FROM favorites WHERE user_id = ? AND media_id = ?
	`).Bind(userID, mediaID).Write()
	if !res.Success {
		return false, fmt.Errorf("failed to remove favorite: %s", res.Error)
	}

	if res.Changed > 0 {
		s.cache.Invalidate(favoritesKey(userID))
	}
	return res.Changed > 0, nil
}

// List returns a user's favorites, newest first, through the TTL cache.
func (s *FavoriteStore) List(userID string) ([]Favorite, error) {
	return s.cache.Get(favoritesKey(userID), func() ([]Favorite, error) {
		res := s.db.Statement(`
			SELECT user_id, media_id, created_at
			FROM favorites
			WHERE user_id = ?
			ORDER BY created_at DESC, media_id
		`).Bind(userID).All()
		if !res.Success {
			return nil, errors.New(res.Error)
		}

		favorites := make([]Favorite, 0, len(res.Rows))
		for _, row := range res.Rows {
			favorites = append(favorites, Favorite{
				UserID:    rowString(row, "user_id"),
				MediaID:   rowString(row, "media_id"),
				CreatedAt: rowInt64(row, "created_at"),
			})
		}
		return favorites, nil
	})
}

// Count reports how many favorites a user has, bypassing the cache. A failed
// count reads as zero.
func (s *FavoriteStore) Count(userID string) int64 {
	v, ok := s.db.Statement(`
		SELECT COUNT(*) AS n FROM favorites WHERE user_id = ?
	`).Bind(userID).OneValue("n")
	if !ok {
		return 0
	}
	return asInt64(v)
}

func favoritesKey(userID string) string {
	return "favorites:" + userID
}
