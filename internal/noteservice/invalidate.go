package noteservice

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/starford/naudiz/internal/cache"
	"github.com/starford/naudiz/internal/models"
)

// Invalidate evicts every cache entry belonging to one owner. Pattern-based
// so it stays correct if the caching scheme grows windowed keys per owner.
// Best effort and at-most-once: a failed eviction is logged and the stale
// entry is left to expire via TTL, so staleness stays bounded either way.
func (s *Service) Invalidate(ctx context.Context, creatorID int64) {
	patterns := cache.OwnerPatterns(s.prefix, creatorID)
	if err := s.cache.DeleteByPattern(ctx, patterns...); err != nil {
		slog.Warn("cache invalidation failed",
			slog.Int64("creator_id", creatorID), slog.String("error", err.Error()))
	}
}

// notifyChange publishes a change event for external subscribers. Publish
// failures are logged and never propagate: notification must not block or
// fail the mutation that triggered it.
func (s *Service) notifyChange(ctx context.Context, method string, creatorID, noteID int64) {
	payload, err := json.Marshal(models.ChangeEvent{
		Method:    method,
		CreatorID: creatorID,
		ID:        noteID,
	})
	if err != nil {
		slog.Warn("marshal change event failed", slog.String("error", err.Error()))
		return
	}
	if err := s.cache.Publish(ctx, s.channel, payload); err != nil {
		slog.Warn("change notification failed",
			slog.String("method", method),
			slog.Int64("creator_id", creatorID),
			slog.Int64("note_id", noteID),
			slog.String("error", err.Error()))
	}
}
