package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// handleProgress serves GET /v1/crawls/{crawl_id}/progress from the in-memory
// snapshot store fed by the progress hub.
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	if s.snapshots == nil {
		s.writeError(w, http.StatusServiceUnavailable, "progress store unavailable")
		return
	}
	idStr := chi.URLParam(r, "crawl_id")
	crawlID, err := uuid.Parse(idStr)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid crawl_id")
		return
	}
	snap, ok := s.snapshots.Get(crawlID)
	if !ok {
		s.writeError(w, http.StatusNotFound, "crawl not found")
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}
