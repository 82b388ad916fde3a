package noteservice

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/starford/naudiz/internal/cache"
	"github.com/starford/naudiz/internal/models"
)

// MaxPageSize caps the effective page size regardless of what the caller
// requests, bounding response size and store load.
const MaxPageSize = 50

// ListPage returns one page of a creator's notes, newest first, plus whether
// further pages exist. cursor, when non-nil, restricts the page to notes
// created strictly before it.
//
// The engine always fetches limit+1 rows; the presence of the extra row is
// what decides hasMore, so no separate count query is needed. Only the
// cursorless first page goes through the cache — cursor pages always hit the
// store directly, since cached snapshots only ever represent the first page.
func (s *Service) ListPage(ctx context.Context, creatorID int64, limit int, cursor *time.Time) ([]models.Note, bool, error) {
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if limit < 1 {
		limit = 1
	}
	fetch := limit + 1

	if cursor != nil {
		notes, err := s.store.RangeByCreator(ctx, creatorID, fetch, cursor)
		if err != nil {
			return nil, false, err
		}
		return page(notes, limit)
	}

	key := cache.FirstPageKey(s.prefix, creatorID)
	if notes, ok := s.cachedFirstPage(ctx, key); ok {
		return page(notes, limit)
	}

	notes, err := s.store.RangeByCreator(ctx, creatorID, fetch, nil)
	if err != nil {
		return nil, false, err
	}
	s.repopulate(ctx, key, notes)
	return page(notes, limit)
}

// cachedFirstPage attempts to serve the first page from cache. Any cache
// failure degrades to a miss so reads keep working against the store alone.
func (s *Service) cachedFirstPage(ctx context.Context, key string) ([]models.Note, bool) {
	data, err := s.cache.Get(ctx, key)
	if errors.Is(err, cache.ErrMiss) {
		return nil, false
	}
	if err != nil {
		slog.Warn("cache read failed, falling back to store",
			slog.String("key", key), slog.String("error", err.Error()))
		return nil, false
	}
	var notes []models.Note
	if err := json.Unmarshal(data, &notes); err != nil {
		slog.Warn("cached page is corrupt, falling back to store",
			slog.String("key", key), slog.String("error", err.Error()))
		return nil, false
	}
	return notes, true
}

// repopulate writes the full limit+1 snapshot back to cache. Failures are
// logged and swallowed; the entry will simply be rebuilt on the next miss.
func (s *Service) repopulate(ctx context.Context, key string, notes []models.Note) {
	payload, err := json.Marshal(notes)
	if err != nil {
		slog.Warn("marshal cache snapshot failed", slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	if err := s.cache.SetWithTTL(ctx, key, payload, s.ttl); err != nil {
		slog.Warn("cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

// page slices off the lookahead row. hasMore is true exactly when the fetch
// returned limit+1 rows.
func page(notes []models.Note, limit int) ([]models.Note, bool, error) {
	hasMore := len(notes) == limit+1
	if len(notes) > limit {
		notes = notes[:limit]
	}
	if notes == nil {
		notes = []models.Note{}
	}
	return notes, hasMore, nil
}
