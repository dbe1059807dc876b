package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes builds the HTTP router.
func (h *Handler) Routes(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/ingest/observations", h.IngestObservations)

		r.Route("/players/{playerID}", func(r chi.Router) {
			r.Get("/line", h.GetSuggestedLine)
			r.Get("/trend", h.GetTrend)
			r.Get("/matchup", h.GetMatchup)
			r.Get("/recommendation", h.GetRecommendation)
			r.Get("/history", h.GetHistory)
			r.Get("/injury", h.GetInjuryStatus)
		})
	})

	return r
}
