package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// SetupRoutes configures all API routes.
func SetupRoutes(h *Handlers, apiKeys []string, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-API-Key"},
		MaxAge:         300,
	}))

	// Health check (no auth required)
	r.Get("/health", h.HealthCheck)

	r.Group(func(r chi.Router) {
		if len(apiKeys) > 0 {
			r.Use(requireAPIKey(apiKeys))
		}
		r.Get("/eligibility-check/{nhsNumber}", h.CheckEligibility)
	})

	return r
}
