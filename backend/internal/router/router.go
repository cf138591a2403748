package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kopdar-dev/kopdar/backend/internal/setup"
	"github.com/kopdar-dev/kopdar/shared/csrf"
	mw "github.com/kopdar-dev/kopdar/shared/middleware"
	"github.com/kopdar-dev/kopdar/shared/middleware/metrics"
	rl "github.com/kopdar-dev/kopdar/shared/middleware/ratelimiter"
)

const limiterTTL = time.Hour

// New creates the chi router with all the routes.
// IMPORTANT! a limiter added with Use is shared by every route of that group
func New(deps *setup.Dependencies) *chi.Mux {
	cfg := deps.Config.Public
	h := deps.Handler
	authMw := deps.AuthMiddleware

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(mw.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(middleware.Compress(5))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Http.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", csrf.HeaderName},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(mw.SecurityHeaders(cfg.SecureCookies, mw.APIContentSecurityPolicy))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	// by IP for everything, by user for writes
	perIP := limiter(deps, 20, 40)
	votes := limiter(deps, cfg.RateLimit.VotesPerSecond, 2*cfg.RateLimit.VotesPerSecond)
	creates := limiter(deps, cfg.RateLimit.CreatesPerMinute/60, cfg.RateLimit.CreatesPerMinute)

	r.Route("/v1", func(r chi.Router) {
		r.Use(mw.RateLimit(perIP, mw.GetIP))
		r.Use(mw.CSRFProtect)

		r.Get("/csrf", mw.IssueCSRFToken(cfg.SecureCookies))

		r.Get("/categories", h.GetCategories)
		r.Get("/categories/{category}/threads", h.GetThreads)
		r.Get("/threads/{thread}", h.GetThread)
		r.Get("/users/{user}/stats", h.GetUserStats)

		// Logged-in user routes
		r.Group(func(r chi.Router) {
			r.Use(authMw.NeedAuth())

			r.Put("/users/me", h.SyncProfile)
			r.Get("/threads/{thread}/vote", h.GetThreadVote)
			r.Get("/replies/{reply}/vote", h.GetReplyVote)

			r.Group(func(r chi.Router) {
				r.Use(mw.RateLimit(creates, mw.GetUserIDFromContext))
				r.Post("/categories/{category}/threads", h.CreateThread)
				r.Post("/threads/{thread}/replies", h.CreateReply)
			})

			r.Group(func(r chi.Router) {
				r.Use(mw.RateLimit(votes, mw.GetUserIDFromContext))
				r.Post("/threads/{thread}/vote", h.CastThreadVote)
				r.Post("/replies/{reply}/vote", h.CastReplyVote)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not found", http.StatusNotFound)
	})

	return r
}

// limiter builds a rate limiter whose sweeper stops with the dependencies.
func limiter(deps *setup.Dependencies, rate, capacity float64) *rl.UserRateLimiter {
	l := rl.New(rate, max(1, capacity), limiterTTL)
	deps.OnClose(l.Stop)
	return l
}
