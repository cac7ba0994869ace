package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/threadlens/threadlens/backend/internal/service"
	"github.com/threadlens/threadlens/shared/api"
	internal_errors "github.com/threadlens/threadlens/shared/errors"
	mw "github.com/threadlens/threadlens/shared/middleware"
	"github.com/threadlens/threadlens/shared/utils"
)

// GetTopicGallery serves GET /topic-gallery/{threadId}. Filter parameters are
// read as-is; the criteria builder decides what they mean. A malformed thread
// id is indistinguishable from a missing thread.
func (h *Handler) GetTopicGallery(w http.ResponseWriter, r *http.Request) {
	topicId, err := strconv.ParseInt(chi.URLParam(r, "threadId"), 10, 64)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, internal_errors.NotFound())
		return
	}

	caller := mw.GetCallerFromContext(r)

	query := r.URL.Query()
	raw := service.RawCriteria{
		Username:   query.Get("username"),
		PostNumber: query.Get("post_number"),
		FromDate:   query.Get("from_date"),
		ToDate:     query.Get("to_date"),
		Page:       query.Get("page"),
	}

	page, err := h.gallery.GetPage(r.Context(), topicId, caller, raw)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, api.GalleryResponseFromDomain(page))
}
