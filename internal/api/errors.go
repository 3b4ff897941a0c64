package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a checked failure with a fixed status and client message.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func validationError(msg string) *Error { return &Error{Status: http.StatusBadRequest, Message: msg} }
func authenticationError(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: msg}
}
func forbiddenError(msg string) *Error { return &Error{Status: http.StatusForbidden, Message: msg} }
func notFoundError(msg string) *Error  { return &Error{Status: http.StatusNotFound, Message: msg} }

// Duplicate usernames and emails are reported as 400, not 409.
func conflictError(msg string) *Error { return &Error{Status: http.StatusBadRequest, Message: msg} }

const (
	msgMissingFields  = "missing required fields"
	msgInvalidBody    = "invalid request body"
	msgInvalidID      = "invalid id"
	msgEmailInUse     = "email in use"
	msgUsernameInUse  = "username in use"
	msgBadCredentials = "wrong email or password"
	msgWrongPassword  = "wrong password"
	msgUserNotFound   = "user not found"
	msgNoteNotFound   = "note not found"
	msgNotAuthed      = "not authenticated"
	msgForbidden      = "forbidden"
	msgRouteNotFound  = "route not found"
	msgServerError    = "server error"
)

var (
	errMissingFields  = validationError(msgMissingFields)
	errInvalidBody    = validationError(msgInvalidBody)
	errInvalidID      = validationError(msgInvalidID)
	errEmailInUse     = conflictError(msgEmailInUse)
	errUsernameInUse  = conflictError(msgUsernameInUse)
	errBadCredentials = authenticationError(msgBadCredentials)
	errWrongPassword  = authenticationError(msgWrongPassword)
	errNotAuthed      = authenticationError(msgNotAuthed)
	errForbidden      = forbiddenError(msgForbidden)
	errUserNotFound   = notFoundError(msgUserNotFound)
	errNoteNotFound   = notFoundError(msgNoteNotFound)
)

// fail writes the envelope for err. Checked *Error values keep their
// status; anything else is logged and reported as a 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		writeError(w, apiErr.Status, apiErr.Message)
		return
	}

	s.logger.Errorw("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	writeJSON(w, http.StatusInternalServerError, envelope{
		"status":  statusError,
		"message": msgServerError,
		"detail":  err.Error(),
	})
}
