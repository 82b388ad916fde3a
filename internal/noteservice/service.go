// Package noteservice implements note CRUD with a read-through cache in
// front of the durable store and change notification on mutation.
package noteservice

import (
	"context"
	"time"

	"github.com/starford/naudiz/internal/cache"
	"github.com/starford/naudiz/internal/models"
	"github.com/starford/naudiz/internal/store"
)

// Service coordinates the durable store, the cache, and the change channel.
type Service struct {
	store   store.NoteStore
	cache   cache.Cache
	prefix  string
	channel string
	ttl     time.Duration
}

// NewService creates a new note service. prefix is the cache key prefix,
// channel the pub/sub channel for change events, ttl the cache entry expiry.
func NewService(st store.NoteStore, c cache.Cache, prefix, channel string, ttl time.Duration) *Service {
	return &Service{store: st, cache: c, prefix: prefix, channel: channel, ttl: ttl}
}

// now returns the current time truncated to the store's millisecond
// resolution, so a note read back from the store compares equal to the one
// returned by the mutation that wrote it.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// Create persists a new note, evicts the owner's cached pages, and announces
// the creation on the change channel.
func (s *Service) Create(ctx context.Context, creatorID int64, text string) (*models.Note, error) {
	ts := now()
	note := &models.Note{
		Text:      text,
		CreatorID: creatorID,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if err := s.store.Insert(ctx, note); err != nil {
		return nil, err
	}
	s.Invalidate(ctx, creatorID)
	s.notifyChange(ctx, "post", creatorID, note.ID)
	return note, nil
}

// Update replaces the text of an existing note and refreshes updated_at.
// Returns apperr.ErrNotFound without mutating anything when the id is
// unknown. Updates do not publish a change event, only create and delete do.
func (s *Service) Update(ctx context.Context, id int64, text string) (*models.Note, error) {
	note, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	note.Text = text
	note.UpdatedAt = now()
	if err := s.store.Update(ctx, note); err != nil {
		return nil, err
	}
	s.Invalidate(ctx, note.CreatorID)
	return note, nil
}

// Delete removes a note, evicts the owner's cached pages, and announces the
// deletion. Deleting an id that no longer exists still succeeds; delete is
// idempotent.
func (s *Service) Delete(ctx context.Context, id, creatorID int64) error {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.Invalidate(ctx, creatorID)
	s.notifyChange(ctx, "delete", creatorID, id)
	return nil
}
