package api

import (
	"net/http"

	"notig/internal/models"
)

// @Summary      List active sessions
// @Description  Lists the live sessions of the calling user.
// @Tags         sessions
// @Produce      json
// @Success      200  {object}  map[string]any  "status=ok, sessions"
// @Failure      401  {object}  map[string]any
// @Router       /sessions [get]
func (s *Server) ListSessionsHandler(w http.ResponseWriter, r *http.Request) {
	caller := GetCallerFromContext(r.Context())
	if caller == nil {
		s.fail(w, r, errNotAuthed)
		return
	}

	sessions, err := s.store.ListSessionsForUser(r.Context(), caller.UserID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if sessions == nil {
		sessions = []models.Session{}
	}

	writeJSON(w, http.StatusOK, envelope{"status": statusOK, "sessions": sessions})
}

// @Summary      Terminate all sessions
// @Description  Ends every session of the calling user, including the current one.
// @Tags         sessions
// @Success      204
// @Failure      401  {object}  map[string]any
// @Router       /sessions/terminate_all [post]
func (s *Server) TerminateAllSessionsHandler(w http.ResponseWriter, r *http.Request) {
	caller := GetCallerFromContext(r.Context())
	if caller == nil {
		s.fail(w, r, errNotAuthed)
		return
	}

	if err := s.store.DeleteAllSessionsForUser(r.Context(), caller.UserID); err != nil {
		s.fail(w, r, err)
		return
	}

	http.SetCookie(w, s.expiredSessionCookie())
	w.WriteHeader(http.StatusNoContent)
}
