// Package store provides the SQLite-backed durable note repository.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/starford/naudiz/internal/apperr"
	"github.com/starford/naudiz/internal/models"
)

// Timestamps are stored as integer Unix milliseconds so that cursor
// comparisons behave exactly like the values clients echo back.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS notes (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	text       TEXT NOT NULL DEFAULT '',
	creator_id INTEGER NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notes_creator_created ON notes(creator_id, created_at DESC, id DESC);
`

// DB wraps a sql.DB with note-specific operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping verifies the database connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Insert persists a new note and assigns its ID.
func (db *DB) Insert(ctx context.Context, n *models.Note) error {
	res, err := db.conn.ExecContext(ctx, `
		INSERT INTO notes (text, creator_id, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, n.Text, n.CreatorID, n.CreatedAt.UnixMilli(), n.UpdatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("store: insert note: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("store: last insert id: %w", err)
	}
	n.ID = id
	return nil
}

// FindByID returns the note with the given id, or apperr.ErrNotFound.
func (db *DB) FindByID(ctx context.Context, id int64) (*models.Note, error) {
	row := db.conn.QueryRowContext(ctx, `
		SELECT id, text, creator_id, created_at, updated_at
		FROM notes WHERE id = ?
	`, id)
	n, err := scanNote(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: find note %d: %w", id, err)
	}
	return n, nil
}

// Update persists text and updated_at for an existing note.
func (db *DB) Update(ctx context.Context, n *models.Note) error {
	_, err := db.conn.ExecContext(ctx, `
		UPDATE notes SET text = ?, updated_at = ? WHERE id = ?
	`, n.Text, n.UpdatedAt.UnixMilli(), n.ID)
	if err != nil {
		return fmt.Errorf("store: update note %d: %w", n.ID, err)
	}
	return nil
}

// DeleteByID removes a note. Deleting an id that does not exist is not an
// error; delete is idempotent.
func (db *DB) DeleteByID(ctx context.Context, id int64) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("store: delete note %d: %w", id, err)
	}
	return nil
}

// RangeByCreator returns up to limit notes for one creator, newest first.
// Ordering ties on created_at are broken by id descending, since sub-second
// creation bursts can share a timestamp. A non-nil before filters to notes
// created strictly earlier than the cursor.
func (db *DB) RangeByCreator(ctx context.Context, creatorID int64, limit int, before *time.Time) ([]models.Note, error) {
	query := `
		SELECT id, text, creator_id, created_at, updated_at
		FROM notes WHERE creator_id = ?`
	args := []any{creatorID}
	if before != nil {
		query += ` AND created_at < ?`
		args = append(args, before.UnixMilli())
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: range by creator %d: %w", creatorID, err)
	}
	defer rows.Close()

	var out []models.Note
	for rows.Next() {
		n, err := scanNote(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("store: scan note: %w", err)
		}
		out = append(out, *n)
	}
	return out, rows.Err()
}

func scanNote(scan func(...any) error) (*models.Note, error) {
	var n models.Note
	var createdMs, updatedMs int64
	if err := scan(&n.ID, &n.Text, &n.CreatorID, &createdMs, &updatedMs); err != nil {
		return nil, err
	}
	n.CreatedAt = time.UnixMilli(createdMs).UTC()
	n.UpdatedAt = time.UnixMilli(updatedMs).UTC()
	return &n, nil
}
