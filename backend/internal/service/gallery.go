package service

import (
	"context"

	"github.com/threadlens/threadlens/shared/config"
	"github.com/threadlens/threadlens/shared/domain"
	internal_errors "github.com/threadlens/threadlens/shared/errors"
	"github.com/threadlens/threadlens/shared/middleware/metrics"
)

// GalleryStorage is the store surface the gallery service needs.
type GalleryStorage interface {
	GetTopic(ctx context.Context, id domain.TopicId) (domain.Topic, error)
	GalleryRefs(ctx context.Context, topicId domain.TopicId, caller *domain.Caller, criteria domain.GalleryCriteria, minImageSize int) ([]domain.GalleryRef, int, error)
}

// Gallery assembles one page of a topic's image gallery: gate, normalize,
// query, resolve.
type Gallery struct {
	storage  GalleryStorage
	gate     *AccessGate
	criteria *CriteriaBuilder
	resolver *Resolver
	cfg      config.Gallery
}

func NewGallery(storage GalleryStorage, gate *AccessGate, criteria *CriteriaBuilder, resolver *Resolver, cfg config.Gallery) *Gallery {
	return &Gallery{storage: storage, gate: gate, criteria: criteria, resolver: resolver, cfg: cfg}
}

// FindTopic applies the access gate and returns the topic. Every rejection is
// the same NotFound; existence must not be distinguishable from denial.
func (g *Gallery) FindTopic(ctx context.Context, topicId domain.TopicId, caller *domain.Caller) (domain.Topic, error) {
	if !g.gate.Allowed(caller) {
		return domain.Topic{}, internal_errors.NotFound()
	}
	topic, err := g.storage.GetTopic(ctx, topicId)
	if err != nil {
		return domain.Topic{}, err
	}
	if !g.gate.CanView(caller, topic) {
		return domain.Topic{}, internal_errors.NotFound()
	}
	return topic, nil
}

// GetPage produces one deduplicated, ordered, paginated gallery page.
func (g *Gallery) GetPage(ctx context.Context, topicId domain.TopicId, caller *domain.Caller, raw RawCriteria) (domain.GalleryPage, error) {
	topic, err := g.FindTopic(ctx, topicId, caller)
	if err != nil {
		return domain.GalleryPage{}, err
	}

	criteria, err := g.criteria.Normalize(ctx, raw)
	if err != nil {
		return domain.GalleryPage{}, err
	}

	refs, total, err := g.storage.GalleryRefs(ctx, topic.Id, caller, criteria, g.cfg.MinImageSize)
	if err != nil {
		return domain.GalleryPage{}, err
	}

	images, err := g.resolver.Resolve(ctx, topic, refs)
	if err != nil {
		return domain.GalleryPage{}, err
	}

	metrics.CountGalleryPage()
	return domain.GalleryPage{
		Title:      topic.Title,
		Slug:       topic.Slug,
		TopicId:    topic.Id,
		Images:     images,
		Page:       criteria.Page,
		HasMore:    (criteria.Page+1)*domain.GalleryPageSize < total,
		Total:      total,
		PostsCount: topic.PostsCount,
	}, nil
}
