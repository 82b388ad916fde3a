package store

import (
	"context"
	"time"

	"github.com/starford/naudiz/internal/models"
)

// NoteStore defines the interface for durable note operations.
// Consumers should depend on this interface rather than the concrete *DB type
// to facilitate testing with mocks.
type NoteStore interface {
	// Insert persists a new note and assigns its ID.
	Insert(ctx context.Context, n *models.Note) error
	// FindByID returns the note with the given id, or apperr.ErrNotFound.
	FindByID(ctx context.Context, id int64) (*models.Note, error)
	// Update persists text and updated_at for an existing note.
	Update(ctx context.Context, n *models.Note) error
	// DeleteByID removes a note; removing an absent id succeeds.
	DeleteByID(ctx context.Context, id int64) error
	// RangeByCreator returns up to limit notes for one creator, newest
	// first, optionally filtered to created_at strictly before the cursor.
	RangeByCreator(ctx context.Context, creatorID int64, limit int, before *time.Time) ([]models.Note, error)
	Close() error
}

// Verify *DB satisfies NoteStore at compile time.
var _ NoteStore = (*DB)(nil)
