package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/threadlens/threadlens/backend/internal/setup"
	mw "github.com/threadlens/threadlens/shared/middleware"
	"github.com/threadlens/threadlens/shared/middleware/metrics"
	rl "github.com/threadlens/threadlens/shared/middleware/ratelimiter"
	"github.com/threadlens/threadlens/shared/utils"
)

// New wires the backend routes. The API is read-only JSON, so the CSP is
// maximally strict.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(mw.RequestId)
	r.Use(metrics.Middleware)

	if deps.Config.Public.ViewerOrigin != "" {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{deps.Config.Public.ViewerOrigin},
			AllowedMethods:   []string{"GET", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	backendCSP := "default-src 'none'; frame-ancestors 'none'"
	r.Use(mw.SecurityHeadersWithCSP(deps.Config.Public.SecureCookies, backendCSP))

	r.Get("/health", deps.Handler.Health)
	r.Method("GET", "/metrics", promhttp.Handler())

	// Gallery JSON endpoint: optional identity, per-IP budget.
	r.Group(func(r chi.Router) {
		r.Use(mw.OptionalIdentity(deps.Identity))
		r.Use(mw.RateLimit(rl.New(10, 30, 1*time.Hour), utils.GetIP))
		r.Get("/topic-gallery/{threadId}", deps.Handler.GetTopicGallery)
	})

	// Media files (originals and derived thumbnails).
	r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(deps.Config.Public.MediaPath))))

	return r
}
