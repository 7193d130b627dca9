package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/config"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/core"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/server/handler"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/session"
)

// NewRouter creates and configures a new HTTP router with middleware, the form routes and API routes.
func NewRouter(cfg *config.Config, sessions *session.Manager, dispatcher core.JobDispatcher, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Configure middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if cfg.Server.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	}

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	form := handler.NewFormHandler(sessions, dispatcher, logger)
	r.Get("/", form.Index)
	r.Post("/upload", form.Upload)
	r.Post("/review", form.Review)
	r.Post("/clear", form.Clear)
	r.Get("/report", form.Report)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		api := handler.NewAPIHandler(dispatcher, logger)
		r.Post("/review", api.Review)
		r.Get("/languages", api.Languages)
	})

	return r
}
