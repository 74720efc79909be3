package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/Fantasim/seedcheck/internal/api/handlers"
	"github.com/Fantasim/seedcheck/internal/api/middleware"
	"github.com/Fantasim/seedcheck/internal/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(cfg *config.Config) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogging)

	slog.Info("router initialized",
		"middleware", []string{"requestLogging"},
	)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health(cfg, Version))
		r.With(middleware.RateLimit(config.SearchRateLimit, config.SearchRateBurst)).
			Post("/search", handlers.Search(cfg))
	})

	return r
}
