package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/threadlens/threadlens/frontend/internal/handler"
	"github.com/threadlens/threadlens/frontend/internal/setup"
	mw "github.com/threadlens/threadlens/shared/middleware"
)

func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(mw.RequestId)

	viewerCSP := "default-src 'self'; img-src 'self' data: https:; style-src 'self' 'unsafe-inline'"
	r.Use(mw.SecurityHeadersWithCSP(deps.Config.Public.SecureCookies, viewerCSP))

	r.Get("/favicon.ico", handler.FaviconHandler)
	r.Get("/health", handler.HealthHandler)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	r.Get("/gallery/{threadId:[0-9]+}", deps.Handler.GalleryGetHandler)
	r.Get("/gallery/{slug}/{threadId:[0-9]+}", deps.Handler.GalleryGetHandler)

	return r
}
