package api

import "github.com/threadlens/threadlens/shared/domain"

// GalleryImage is the wire form of one resolved gallery entry.
type GalleryImage struct {
	Id           domain.UploadId `json:"id"`
	ThumbnailUrl string          `json:"thumbnailUrl"`
	Url          string          `json:"url"`
	Width        int             `json:"width"`
	Height       int             `json:"height"`
	Filesize     string          `json:"filesize"`
	FileName     string          `json:"fileName"`
	DownloadUrl  string          `json:"downloadUrl"`
	Username     string          `json:"username,omitempty"`
	PostId       domain.PostId   `json:"postId"`
	PostNumber   int             `json:"postNumber"`
	PostUrl      string          `json:"postUrl"`
}

// GalleryResponse is the JSON body of GET /topic-gallery/{threadId}.
type GalleryResponse struct {
	Title      string         `json:"title"`
	Slug       string         `json:"slug"`
	Id         domain.TopicId `json:"id"`
	Images     []GalleryImage `json:"images"`
	Page       int            `json:"page"`
	HasMore    bool           `json:"hasMore"`
	Total      int            `json:"total"`
	PostsCount int            `json:"postsCount"`
}

func GalleryResponseFromDomain(p domain.GalleryPage) GalleryResponse {
	images := make([]GalleryImage, len(p.Images))
	for i, img := range p.Images {
		images[i] = GalleryImage{
			Id:           img.UploadId,
			ThumbnailUrl: img.ThumbnailUrl,
			Url:          img.Url,
			Width:        img.Width,
			Height:       img.Height,
			Filesize:     img.Filesize,
			FileName:     img.FileName,
			DownloadUrl:  img.DownloadUrl,
			Username:     img.Username,
			PostId:       img.PostId,
			PostNumber:   img.PostNumber,
			PostUrl:      img.PostUrl,
		}
	}
	return GalleryResponse{
		Title:      p.Title,
		Slug:       p.Slug,
		Id:         p.TopicId,
		Images:     images,
		Page:       p.Page,
		HasMore:    p.HasMore,
		Total:      p.Total,
		PostsCount: p.PostsCount,
	}
}

// ToDomain converts a decoded response back into the domain page, used by the
// gallery viewer after fetching.
func (r GalleryResponse) ToDomain() domain.GalleryPage {
	images := make([]domain.ResolvedImage, len(r.Images))
	for i, img := range r.Images {
		images[i] = domain.ResolvedImage{
			UploadId:     img.Id,
			ThumbnailUrl: img.ThumbnailUrl,
			Url:          img.Url,
			Width:        img.Width,
			Height:       img.Height,
			Filesize:     img.Filesize,
			FileName:     img.FileName,
			DownloadUrl:  img.DownloadUrl,
			Username:     img.Username,
			PostId:       img.PostId,
			PostNumber:   img.PostNumber,
			PostUrl:      img.PostUrl,
		}
	}
	return domain.GalleryPage{
		Title:      r.Title,
		Slug:       r.Slug,
		TopicId:    r.Id,
		Images:     images,
		Page:       r.Page,
		HasMore:    r.HasMore,
		Total:      r.Total,
		PostsCount: r.PostsCount,
	}
}
