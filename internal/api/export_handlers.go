package api

import (
	"fmt"
	"net/http"
	"strconv"

	"notig/internal/export"
)

// @Summary      Export a note as PDF
// @Description  Renders the note and returns it as a PDF attachment named after its title.
// @Tags         notes
// @Produce      application/pdf
// @Param        id   path      int             true  "Note ID"
// @Success      200  {file}    file
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      404  {object}  map[string]any  "note not found"
// @Failure      500  {object}  map[string]any
// @Router       /note/{id}/export [get]
func (s *Server) ExportNoteHandler(w http.ResponseWriter, r *http.Request) {
	note, err := s.loadNote(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	doc, err := export.RenderBytes(note)
	if err != nil {
		s.fail(w, r, fmt.Errorf("render note %d: %w", note.ID, err))
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", export.ContentDisposition(note.Title))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		s.logger.Warnw("failed to stream export", "note_id", note.ID, "error", err)
		return
	}

	exportsTotal.Inc()
}
