package api

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"notig/internal/auth"

	"github.com/go-chi/chi/v5/middleware"
)

type contextKey string

const callerContextKey = contextKey("caller")

// Caller is the authenticated identity bound to a request.
type Caller struct {
	UserID       int64
	SessionToken string
}

// AuthMiddleware lets a request through only when its session cookie is
// validly signed and references a live session of an existing user.
func (s *Server) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(s.config.Session.CookieName)
		if err != nil || cookie.Value == "" {
			s.fail(w, r, errNotAuthed)
			return
		}

		claims, err := auth.VerifySessionCookie(cookie.Value, s.config.Session.Secret)
		if err != nil {
			s.logger.Debugw("rejected session cookie", "error", err)
			s.fail(w, r, errNotAuthed)
			return
		}

		userID, ok, err := s.store.GetSessionUserID(r.Context(), claims.SessionToken)
		if err != nil {
			s.fail(w, r, fmt.Errorf("resolve session: %w", err))
			return
		}
		if !ok || userID != claims.UserID {
			s.fail(w, r, errNotAuthed)
			return
		}

		ctx := contextWithCaller(r.Context(), &Caller{
			UserID:       userID,
			SessionToken: claims.SessionToken,
		})

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func contextWithCaller(ctx context.Context, caller *Caller) context.Context {
	return context.WithValue(ctx, callerContextKey, caller)
}

func GetCallerFromContext(ctx context.Context) *Caller {
	if caller, ok := ctx.Value(callerContextKey).(*Caller); ok {
		return caller
	}
	return nil
}

// authorize enforces that the caller owns ownerID when ownership checks are
// enabled.
func (s *Server) authorize(r *http.Request, ownerID int64) error {
	if !s.config.Security.EnforceOwnership {
		return nil
	}
	caller := GetCallerFromContext(r.Context())
	if caller == nil || caller.UserID != ownerID {
		return errForbidden
	}
	return nil
}

// RecoverMiddleware turns a panic into the 500 envelope.
func (s *Server) RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				s.logger.Errorw("panic recovered",
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				s.fail(w, r, fmt.Errorf("%v", rec))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Infow("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
