package api

import "github.com/starford/naudiz/internal/models"

// PaginatedNotesRequest is the request body for listing a page of notes.
// Cursor is a Unix-millisecond timestamp carried as a string; empty means
// the first page.
type PaginatedNotesRequest struct {
	CreatorID int64  `json:"creatorId"`
	Limit     int    `json:"limit"`
	Cursor    string `json:"cursor,omitempty"`
}

// PaginatedNotesResponse wraps one page of notes.
type PaginatedNotesResponse struct {
	Notes   []models.Note `json:"notes"`
	HasMore bool          `json:"hasMore"`
}

// CreateNoteRequest is the request body for creating a note.
type CreateNoteRequest struct {
	CreatorID int64  `json:"creatorId"`
	Text      string `json:"text"`
}

// UpdateNoteRequest is the request body for updating a note's text.
type UpdateNoteRequest struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

// DeleteNoteRequest is the request body for deleting a note.
type DeleteNoteRequest struct {
	ID        int64 `json:"id"`
	CreatorID int64 `json:"creatorId"`
}

// NoteResponse wraps a single note.
type NoteResponse struct {
	Note *models.Note `json:"note"`
}
