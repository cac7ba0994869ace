package handler

import (
	"context"

	"github.com/threadlens/threadlens/backend/internal/service"
	"github.com/threadlens/threadlens/shared/domain"
)

// GalleryService is what the HTTP layer needs from the gallery core.
type GalleryService interface {
	GetPage(ctx context.Context, topicId domain.TopicId, caller *domain.Caller, raw service.RawCriteria) (domain.GalleryPage, error)
}

type Handler struct {
	gallery GalleryService
}

func New(gallery GalleryService) *Handler {
	return &Handler{gallery: gallery}
}
