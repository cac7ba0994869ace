package setup

import (
	"html/template"
	"log"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/threadlens/threadlens/frontend/internal/apiclient"
	"github.com/threadlens/threadlens/frontend/internal/handler"
	"github.com/threadlens/threadlens/shared/config"
)

const (
	baseTemplate           = "base.html"
	tmplPath               = "templates"
	templateReloadInterval = 5 * time.Second
)

type Dependencies struct {
	Config  *config.Config
	Handler *handler.Handler
}

func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	templates := mustLoadTemplates(tmplPath)

	apiBase := cfg.Public.ApiBaseUrl
	if apiBase == "" {
		apiBase = "http://api:8080"
	}
	apiClient := apiclient.New(apiBase)

	h := handler.New(templates, cfg.Public, apiClient)
	startTemplateReloader(h, tmplPath)

	return &Dependencies{
		Config:  cfg,
		Handler: h,
	}, nil
}

func sub(a, b int) int { return a - b }
func add(a, b int) int { return a + b }

func mustLoadTemplates(tmplPath string) map[string]*template.Template {
	templates := make(map[string]*template.Template)
	files, err := os.ReadDir(tmplPath)
	if err != nil {
		log.Fatal(err)
	}

	for _, f := range files {
		if filepath.Ext(f.Name()) == ".html" && f.Name() != baseTemplate {
			templates[f.Name()] = template.Must(template.New(baseTemplate).Funcs(
				template.FuncMap{
					"sub": sub,
					"add": add,
				},
			).ParseFiles(
				path.Join(tmplPath, baseTemplate),
				path.Join(tmplPath, f.Name()),
			))
		}
	}
	return templates
}

func startTemplateReloader(h *handler.Handler, tmplPath string) {
	if os.Getenv("ENV") == "development" {
		ticker := time.NewTicker(templateReloadInterval)
		go func() {
			for range ticker.C {
				h.Templates = mustLoadTemplates(tmplPath)
			}
		}()
	}
}
