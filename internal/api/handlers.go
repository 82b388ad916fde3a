package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/starford/naudiz/internal/apperr"
	"github.com/starford/naudiz/internal/noteservice"
)

const maxBodyBytes = 1 << 20

// Handler holds API route handlers.
type Handler struct {
	svc *noteservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *noteservice.Service) *Handler {
	return &Handler{svc: svc}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return false
	}
	return true
}

// PaginatedNotes handles POST /paginated-notes.
func (h *Handler) PaginatedNotes(w http.ResponseWriter, r *http.Request) {
	var req PaginatedNotesRequest
	if !decode(w, r, &req) {
		return
	}
	if req.CreatorID == 0 {
		writeJSON(w, http.StatusBadRequest, errorBody("creatorId is required"))
		return
	}

	var cursor *time.Time
	if req.Cursor != "" {
		ms, err := strconv.ParseInt(req.Cursor, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("cursor must be a millisecond timestamp"))
			return
		}
		t := time.UnixMilli(ms).UTC()
		cursor = &t
	}

	notes, hasMore, err := h.svc.ListPage(r.Context(), req.CreatorID, req.Limit, cursor)
	if err != nil {
		slog.Error("list page failed",
			slog.Int64("creator_id", req.CreatorID), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, PaginatedNotesResponse{Notes: notes, HasMore: hasMore})
}

// CreateNote handles POST /notes.
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req CreateNoteRequest
	if !decode(w, r, &req) {
		return
	}
	if req.CreatorID == 0 || req.Text == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("creatorId and text are required"))
		return
	}
	note, err := h.svc.Create(r.Context(), req.CreatorID, req.Text)
	if err != nil {
		slog.Error("create note failed",
			slog.Int64("creator_id", req.CreatorID), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, NoteResponse{Note: note})
}

// UpdateNote handles PUT /notes.
//
// A missing note is reported in the response body with status 200, not as an
// HTTP error status. Downstream consumers already depend on that shape.
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	var req UpdateNoteRequest
	if !decode(w, r, &req) {
		return
	}
	if req.ID == 0 || req.Text == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("id and text are required"))
		return
	}
	note, err := h.svc.Update(r.Context(), req.ID, req.Text)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusOK, errorBody(fmt.Sprintf("no note with id %d found", req.ID)))
			return
		}
		slog.Error("update note failed",
			slog.Int64("id", req.ID), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, NoteResponse{Note: note})
}

// DeleteNote handles DELETE /notes. Responds with a literal JSON true;
// deleting an id that does not exist still counts as success.
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	var req DeleteNoteRequest
	if !decode(w, r, &req) {
		return
	}
	if req.ID == 0 || req.CreatorID == 0 {
		writeJSON(w, http.StatusBadRequest, errorBody("id and creatorId are required"))
		return
	}
	if err := h.svc.Delete(r.Context(), req.ID, req.CreatorID); err != nil {
		slog.Error("delete note failed",
			slog.Int64("id", req.ID), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, true)
}
