/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the dashboard frontend
  5. RateLimit:  Per-IP token bucket

ROUTE GROUPS:
  /api/timeclock/*   Reporting (always computed fresh)
  /api/staff         Staff directory (response cached briefly)
  /api/scenarios/*   Demo data

SEE ALSO:
  - handlers.go: Handler implementations
  - middleware.go: Rate limit and cache middleware
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/lengolf/timeclock-engine/config"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(RateLimit(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst))

	rosterCache := gocache.New(cfg.RosterCacheTTL(), 2*cfg.RosterCacheTTL())

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Reporting routes - never cached, recomputed per request
		r.Route("/timeclock", func(r chi.Router) {
			r.Get("/report", h.GetReport)
			r.Get("/shifts", h.ListShifts)
			r.Get("/analytics", h.GetAnalytics)
			r.Get("/rules", h.GetRules)
		})

		// Staff directory - slow-moving, cached briefly
		r.With(CacheGET(rosterCache, cfg.RosterCacheTTL())).Get("/staff", h.ListStaff)

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Post("/load", h.LoadScenario)
		})
	})

	return r
}
