package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/starford/naudiz/internal/apperr"
	"github.com/starford/naudiz/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "naudiz-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func insertNote(t *testing.T, db *DB, creatorID int64, text string, at time.Time) *models.Note {
	t.Helper()
	n := &models.Note{
		Text:      text,
		CreatorID: creatorID,
		CreatedAt: at,
		UpdatedAt: at,
	}
	if err := db.Insert(context.Background(), n); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	return n
}

func TestInsertAssignsID(t *testing.T) {
	db := testDB(t)
	now := time.Now().UTC().Truncate(time.Millisecond)

	a := insertNote(t, db, 1, "first", now)
	b := insertNote(t, db, 1, "second", now)

	if a.ID == 0 || b.ID == 0 {
		t.Fatalf("ids not assigned: %d, %d", a.ID, b.ID)
	}
	if b.ID <= a.ID {
		t.Errorf("ids not increasing: %d then %d", a.ID, b.ID)
	}
}

func TestFindByIDRoundTrip(t *testing.T) {
	db := testDB(t)
	now := time.Now().UTC().Truncate(time.Millisecond)
	created := insertNote(t, db, 7, "hello", now)

	got, err := db.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Text != "hello" || got.CreatorID != 7 {
		t.Errorf("got %+v", got)
	}
	if !got.CreatedAt.Equal(now) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, now)
	}
}

func TestFindByIDMissing(t *testing.T) {
	db := testDB(t)
	_, err := db.FindByID(context.Background(), 12345)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdate(t *testing.T) {
	db := testDB(t)
	now := time.Now().UTC().Truncate(time.Millisecond)
	n := insertNote(t, db, 1, "before", now)

	n.Text = "after"
	n.UpdatedAt = now.Add(time.Second)
	if err := db.Update(context.Background(), n); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := db.FindByID(context.Background(), n.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Text != "after" {
		t.Errorf("text = %q, want %q", got.Text, "after")
	}
	if !got.UpdatedAt.Equal(now.Add(time.Second)) {
		t.Errorf("updated_at not refreshed: %v", got.UpdatedAt)
	}
	if !got.CreatedAt.Equal(now) {
		t.Errorf("created_at changed: %v", got.CreatedAt)
	}
}

func TestDeleteByIDIdempotent(t *testing.T) {
	db := testDB(t)
	now := time.Now().UTC().Truncate(time.Millisecond)
	n := insertNote(t, db, 1, "bye", now)

	if err := db.DeleteByID(context.Background(), n.ID); err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}
	// Deleting again must still succeed.
	if err := db.DeleteByID(context.Background(), n.ID); err != nil {
		t.Fatalf("second DeleteByID: %v", err)
	}
	if _, err := db.FindByID(context.Background(), n.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("note still present after delete")
	}
}

func TestRangeByCreatorOrdering(t *testing.T) {
	db := testDB(t)
	base := time.Now().UTC().Truncate(time.Millisecond)

	insertNote(t, db, 1, "oldest", base)
	insertNote(t, db, 1, "middle", base.Add(time.Second))
	insertNote(t, db, 1, "newest", base.Add(2*time.Second))
	insertNote(t, db, 2, "other owner", base.Add(3*time.Second))

	notes, err := db.RangeByCreator(context.Background(), 1, 10, nil)
	if err != nil {
		t.Fatalf("RangeByCreator: %v", err)
	}
	if len(notes) != 3 {
		t.Fatalf("len = %d, want 3", len(notes))
	}
	if notes[0].Text != "newest" || notes[1].Text != "middle" || notes[2].Text != "oldest" {
		t.Errorf("wrong order: %q, %q, %q", notes[0].Text, notes[1].Text, notes[2].Text)
	}
}

func TestRangeByCreatorTieBreakByID(t *testing.T) {
	db := testDB(t)
	at := time.Now().UTC().Truncate(time.Millisecond)

	insertNote(t, db, 1, "first insert", at)
	insertNote(t, db, 1, "second insert", at)

	notes, err := db.RangeByCreator(context.Background(), 1, 10, nil)
	if err != nil {
		t.Fatalf("RangeByCreator: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("len = %d, want 2", len(notes))
	}
	// Same created_at: later insert (higher id) comes first.
	if notes[0].Text != "second insert" {
		t.Errorf("tie not broken by id desc: first = %q", notes[0].Text)
	}
}

func TestRangeByCreatorCursor(t *testing.T) {
	db := testDB(t)
	base := time.Now().UTC().Truncate(time.Millisecond)

	insertNote(t, db, 1, "old", base)
	insertNote(t, db, 1, "new", base.Add(time.Second))

	cursor := base.Add(time.Second)
	notes, err := db.RangeByCreator(context.Background(), 1, 10, &cursor)
	if err != nil {
		t.Fatalf("RangeByCreator: %v", err)
	}
	// Strict less-than: the note created exactly at the cursor is excluded.
	if len(notes) != 1 || notes[0].Text != "old" {
		t.Fatalf("cursor filter wrong: %+v", notes)
	}
}

func TestRangeByCreatorLimit(t *testing.T) {
	db := testDB(t)
	base := time.Now().UTC().Truncate(time.Millisecond)
	for i := 0; i < 5; i++ {
		insertNote(t, db, 1, "n", base.Add(time.Duration(i)*time.Second))
	}
	notes, err := db.RangeByCreator(context.Background(), 1, 3, nil)
	if err != nil {
		t.Fatalf("RangeByCreator: %v", err)
	}
	if len(notes) != 3 {
		t.Errorf("len = %d, want 3", len(notes))
	}
}
