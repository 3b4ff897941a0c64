package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"notig/internal/auth"
	"notig/internal/database"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Username string `json:"username" example:"ann"`
	Email    string `json:"email" example:"ann@x.com"`
	Password string `json:"password" example:"secret1"`
}

type LoginRequest struct {
	Email    string `json:"email" example:"ann@x.com"`
	Password string `json:"password" example:"secret1"`
}

// @Summary      Register an account
// @Tags         authentication
// @Accept       json
// @Produce      json
// @Param        registerRequest  body      RegisterRequest  true  "Account details"
// @Success      201              {object}  map[string]any   "status=created, userId"
// @Failure      400              {object}  map[string]any   "missing fields, email in use or username in use"
// @Failure      500              {object}  map[string]any
// @Router       /authentication/register [post]
func (s *Server) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		s.fail(w, r, errMissingFields)
		return
	}

	existing, err := s.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if existing != nil {
		s.fail(w, r, errEmailInUse)
		return
	}

	existing, err = s.store.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if existing != nil {
		s.fail(w, r, errUsernameInUse)
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		s.fail(w, r, fmt.Errorf("hash password: %w", err))
		return
	}

	userID, err := s.store.CreateUser(r.Context(), req.Username, req.Email, hashedPassword)
	if err != nil {
		s.fail(w, r, translateUserConflict(err))
		return
	}

	registrationsTotal.Inc()
	writeJSON(w, http.StatusCreated, envelope{"status": statusCreated, "userId": userID})
}

// translateUserConflict maps store-level uniqueness errors, which only occur
// when a concurrent write slipped past the pre-checks.
func translateUserConflict(err error) error {
	switch {
	case errors.Is(err, database.ErrEmailTaken):
		return errEmailInUse
	case errors.Is(err, database.ErrUsernameTaken):
		return errUsernameInUse
	}
	return err
}

// comparePassword checks password against hash. With an empty hash it still
// runs a bcrypt comparison so unknown accounts cost the same as known ones.
func (s *Server) comparePassword(password, hash string) bool {
	if hash == "" {
		s.dummyHashOnce.Do(func() {
			s.dummyHash, _ = auth.HashPassword("notig-dummy-password")
		})
		auth.CheckPasswordHash(password, s.dummyHash)
		return false
	}
	return auth.CheckPasswordHash(password, hash)
}

// @Summary      Log in
// @Description  Verifies credentials and starts a server-side session referenced by an HttpOnly cookie.
// @Tags         authentication
// @Accept       json
// @Produce      json
// @Param        loginRequest  body      LoginRequest    true  "Credentials"
// @Success      200           {object}  map[string]any  "status=success, userId, username"
// @Failure      400           {object}  map[string]any
// @Failure      401           {object}  map[string]any  "wrong email or password"
// @Failure      500           {object}  map[string]any
// @Router       /authentication/login [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	if req.Email == "" || req.Password == "" {
		s.fail(w, r, errMissingFields)
		return
	}

	user, err := s.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var hash string
	if user != nil {
		hash = user.PasswordHash
	}
	if !s.comparePassword(req.Password, hash) {
		loginsTotal.WithLabelValues("rejected").Inc()
		s.fail(w, r, errBadCredentials)
		return
	}

	if _, err := s.store.DeleteExpiredSessions(r.Context(), user.ID); err != nil {
		s.logger.Warnw("failed to prune expired sessions", "user_id", user.ID, "error", err)
	}

	token, err := auth.NewSessionToken()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	expiresAt := time.Now().Add(s.config.Session.TTL)

	err = s.store.CreateSession(r.Context(), database.CreateSessionParams{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     token,
		UserAgent: r.UserAgent(),
		ClientIP:  r.RemoteAddr,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		s.fail(w, r, fmt.Errorf("create session for user %d: %w", user.ID, err))
		return
	}

	value, err := auth.SignSessionCookie(user.ID, token, s.config.Session.Secret, expiresAt)
	if err != nil {
		s.fail(w, r, fmt.Errorf("sign session cookie: %w", err))
		return
	}
	http.SetCookie(w, s.sessionCookie(value, expiresAt))

	loginsTotal.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusOK, envelope{
		"status":   statusSuccess,
		"userId":   user.ID,
		"username": user.Username,
	})
}

// @Summary      Log out
// @Tags         authentication
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Router       /user/logout [post]
func (s *Server) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	caller := GetCallerFromContext(r.Context())
	if caller == nil {
		s.fail(w, r, errNotAuthed)
		return
	}

	if err := s.store.DeleteSessionByToken(r.Context(), caller.SessionToken); err != nil {
		s.fail(w, r, fmt.Errorf("delete session: %w", err))
		return
	}

	http.SetCookie(w, s.expiredSessionCookie())
	writeJSON(w, http.StatusOK, envelope{"status": statusSuccess})
}

func (s *Server) sessionCookie(value string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     s.config.Session.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   s.config.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (s *Server) expiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     s.config.Session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.config.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
