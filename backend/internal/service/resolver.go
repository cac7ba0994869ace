package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/threadlens/threadlens/shared/domain"
	"github.com/threadlens/threadlens/shared/logger"
)

// ResolverStorage batch-loads everything one page of refs needs. One round
// trip per collection, no per-image queries.
type ResolverStorage interface {
	UploadsByIds(ctx context.Context, ids []domain.UploadId) (map[domain.UploadId]domain.Upload, error)
	OptimizedImagesByUploadIds(ctx context.Context, ids []domain.UploadId) (map[domain.UploadId][]domain.OptimizedImage, error)
	UsersByIds(ctx context.Context, ids []domain.UserId) (map[domain.UserId]domain.User, error)
}

// ThumbnailCreator is the find-or-create side effect behind AttachmentResolver.
type ThumbnailCreator interface {
	CreateFor(ctx context.Context, upload domain.Upload, width, height int) (*domain.OptimizedImage, error)
}

// Resolver turns gallery refs into presentable images: thumbnail selection
// (creating one when missing), URL cooking, author names, display sizes.
type Resolver struct {
	storage ResolverStorage
	thumbs  ThumbnailCreator
	cooker  URLCooker
}

func NewResolver(storage ResolverStorage, thumbs ThumbnailCreator, cooker URLCooker) *Resolver {
	return &Resolver{storage: storage, thumbs: thumbs, cooker: cooker}
}

func (r *Resolver) Resolve(ctx context.Context, topic domain.Topic, refs []domain.GalleryRef) ([]domain.ResolvedImage, error) {
	uploadIds := make([]domain.UploadId, 0, len(refs))
	authorIds := make([]domain.UserId, 0, len(refs))
	seenAuthors := make(map[domain.UserId]bool, len(refs))
	for _, ref := range refs {
		uploadIds = append(uploadIds, ref.UploadId)
		if !seenAuthors[ref.AuthorId] {
			seenAuthors[ref.AuthorId] = true
			authorIds = append(authorIds, ref.AuthorId)
		}
	}

	uploads, err := r.storage.UploadsByIds(ctx, uploadIds)
	if err != nil {
		return nil, err
	}
	optimized, err := r.storage.OptimizedImagesByUploadIds(ctx, uploadIds)
	if err != nil {
		return nil, err
	}
	users, err := r.storage.UsersByIds(ctx, authorIds)
	if err != nil {
		return nil, err
	}

	images := make([]domain.ResolvedImage, 0, len(refs))
	for _, ref := range refs {
		upload, ok := uploads[ref.UploadId]
		if !ok {
			// upload row vanished between the ranked query and this batch;
			// skip rather than render a broken entry
			continue
		}
		images = append(images, r.resolveOne(ctx, topic, ref, upload, optimized[ref.UploadId], users))
	}
	return images, nil
}

func (r *Resolver) resolveOne(ctx context.Context, topic domain.Topic, ref domain.GalleryRef, upload domain.Upload, derived []domain.OptimizedImage, users map[domain.UserId]domain.User) domain.ResolvedImage {
	thumbW, thumbH := upload.TargetThumbnailSize()
	ext := "." + strings.TrimPrefix(upload.Extension, ".")

	var thumb *domain.OptimizedImage
	for i := range derived {
		if derived[i].Width == thumbW && derived[i].Height == thumbH && derived[i].Extension == ext {
			thumb = &derived[i]
			break
		}
	}
	if thumb == nil {
		created, err := r.thumbs.CreateFor(ctx, upload, thumbW, thumbH)
		if err != nil {
			logger.Log.Warn("thumbnail creation failed", "upload", upload.Id, "error", err)
		}
		thumb = created
	}

	thumbnailRawUrl := upload.Url
	if thumb != nil {
		thumbnailRawUrl = thumb.Url
	}

	width, height := 0, 0
	if upload.Width != nil {
		width = *upload.Width
	}
	if upload.Height != nil {
		height = *upload.Height
	}

	img := domain.ResolvedImage{
		UploadId:     upload.Id,
		ThumbnailUrl: r.cooker.CookUrl(thumbnailRawUrl, upload.Secure, true),
		Url:          r.cooker.CookUrl(upload.Url, upload.Secure, true),
		Width:        width,
		Height:       height,
		Filesize:     humanize.IBytes(uint64(upload.Filesize)),
		FileName:     upload.OriginalFilename,
		DownloadUrl:  fmt.Sprintf("/uploads/short-url/%d%s", upload.Id, ext),
		PostId:       ref.PostId,
		PostNumber:   ref.PostNumber,
		PostUrl:      fmt.Sprintf("/t/%s/%d/%d", topic.Slug, topic.Id, ref.PostNumber),
	}
	if author, ok := users[ref.AuthorId]; ok {
		img.Username = author.Username
	}
	return img
}
