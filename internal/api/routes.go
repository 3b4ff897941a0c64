package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "notig/docs"
)

// Routes builds the HTTP handler for the whole service.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.LoggingMiddleware)
	r.Use(s.RecoverMiddleware)
	r.Use(MetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// A known path with the wrong method is reported as an unknown route.
	r.NotFound(routeNotFound)
	r.MethodNotAllowed(routeNotFound)

	r.Get("/health", s.HealthCheckHandler)
	r.Get("/ready", s.ReadinessHandler)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.HealthCheckHandler)

		r.Post("/authentication/register", s.RegisterHandler)
		r.Post("/authentication/login", s.LoginHandler)

		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware)

			r.Post("/user/logout", s.LogoutHandler)
			r.Put("/user/update", s.UpdateProfileHandler)
			r.Post("/user/delete", s.DeleteProfileHandler)
			r.Get("/user/{id}", s.GetUserHandler)

			r.Get("/sessions", s.ListSessionsHandler)
			r.Post("/sessions/terminate_all", s.TerminateAllSessionsHandler)

			r.Post("/note", s.CreateNoteHandler)
			r.Get("/note/user/{userId}", s.ListNotesHandler)
			r.Get("/note/notes/{id}", s.GetNoteHandler)
			r.Put("/note/update/{id}", s.UpdateNoteHandler)
			r.Delete("/note/delete/{id}", s.DeleteNoteHandler)
			r.Get("/note/{id}/export", s.ExportNoteHandler)
		})
	})

	return r
}

func routeNotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, msgRouteNotFound)
}

// @Summary      Liveness check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]any  "status=ok"
// @Router       /health [get]
func (s *Server) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{"status": statusOK})
}

// ReadinessHandler reports whether the database answers a ping.
func (s *Server) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.logger.Warnw("readiness check failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, envelope{"status": statusOK})
}
