// Package api implements the Naudiz REST API using chi.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/naudiz/internal/noteservice"
)

// NewRouter creates a chi router with all API routes mounted.
// sseHandler, if non-nil, is mounted at GET /events.
func NewRouter(svc *noteservice.Service, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()

	// Paginated read path.
	r.Post("/paginated-notes", h.PaginatedNotes)

	// Notes mutations.
	r.Post("/notes", h.CreateNote)
	r.Put("/notes", h.UpdateNote)
	r.Delete("/notes", h.DeleteNote)

	// Change-feed SSE endpoint.
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
