package handler

import (
	"html/template"
	"net/http"

	"github.com/threadlens/threadlens/frontend/internal/apiclient"
	"github.com/threadlens/threadlens/shared/config"
)

type Handler struct {
	Templates map[string]*template.Template
	Public    config.Public
	APIClient *apiclient.APIClient
}

func New(templates map[string]*template.Template, publicCfg config.Public, apiClient *apiclient.APIClient) *Handler {
	return &Handler{
		Templates: templates,
		Public:    publicCfg,
		APIClient: apiClient,
	}
}

func FaviconHandler(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, "static/favicon.ico")
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
