package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lectioapp/lectio-server/internal/export"
	"github.com/lectioapp/lectio-server/internal/http/response"
)

// Export downloads are chi-direct rather than huma-typed: the payload is a
// binary file with a per-format content type, not a JSON body.
func (s *Server) registerExportRoutes() {
	s.router.Get("/api/v1/export/{format}/{noteID}", s.handleExport)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := export.Format(chi.URLParam(r, "format"))
	noteID := chi.URLParam(r, "noteID")

	artifact, err := s.notes.Export(r.Context(), format, noteID)
	if err != nil {
		response.Error(w, err, s.log)
		return
	}

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(artifact.Data)))
	if _, err := w.Write(artifact.Data); err != nil {
		s.log.WithError(err).Warn("write export response", "note_id", noteID)
	}
}
