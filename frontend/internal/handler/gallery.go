package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/threadlens/threadlens/frontend/internal/controller"
	"github.com/threadlens/threadlens/shared/api"
	"github.com/threadlens/threadlens/shared/logger"
	"github.com/threadlens/threadlens/shared/utils"
)

// GalleryGetHandler serves the gallery shell for one thread. The first page is
// fetched server-side with the caller's cookies; the backend's status code
// (including the uniform 404) propagates unchanged.
func (h *Handler) GalleryGetHandler(w http.ResponseWriter, r *http.Request) {
	threadId, err := strconv.ParseInt(chi.URLParam(r, "threadId"), 10, 64)
	if err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	query := api.GalleryQueryFromValues(r.URL.Query())
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 0 {
		page = 0
	}

	gallery, err := h.APIClient.GetGallery(r.Context(), threadId, query, page, r.Cookies()...)
	if err != nil {
		logger.Log.Warn("gallery fetch failed", "thread", threadId, "error", err)
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	ctrl := controller.New(h.APIClient, threadId, gallery.Slug, 0)
	ctrl.Seed(gallery, query)

	// Bare-id requests settle on the slugged canonical URL.
	if chi.URLParam(r, "slug") == "" && gallery.Slug != "" {
		http.Redirect(w, r, ctrl.Location(), http.StatusMovedPermanently)
		return
	}

	templateData := struct {
		Gallery    controller.Snapshot
		ThreadId   int64
		Canonical  string
		HasFilters bool
	}{
		Gallery:    ctrl.Snapshot(),
		ThreadId:   threadId,
		Canonical:  ctrl.Location(),
		HasFilters: ctrl.HasFilters(),
	}
	h.renderTemplate(w, "gallery.html", templateData)
}
