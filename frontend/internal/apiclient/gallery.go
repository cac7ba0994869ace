package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/threadlens/threadlens/shared/api"
	internal_errors "github.com/threadlens/threadlens/shared/errors"
	"github.com/threadlens/threadlens/shared/utils"
)

// GetGallery fetches one gallery page for a thread. Cookies from the original
// browser request are forwarded so the backend sees the caller's identity.
func (c *APIClient) GetGallery(ctx context.Context, threadId int64, query api.GalleryQuery, page int, cookies ...*http.Cookie) (api.GalleryResponse, error) {
	var gallery api.GalleryResponse

	path := fmt.Sprintf("/topic-gallery/%d", threadId)
	params := query.Values()
	if page > 0 {
		params.Set("page", fmt.Sprint(page))
	}
	if enc := params.Encode(); enc != "" {
		path += "?" + enc
	}

	resp, err := c.do(ctx, "GET", path, nil, cookies...)
	if err != nil {
		return gallery, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return gallery, &internal_errors.ErrorWithStatusCode{
			Message: fmt.Sprintf("gallery for thread %d not found", threadId), StatusCode: resp.StatusCode,
		}
	}

	if err := utils.Decode(resp.Body, &gallery); err != nil {
		return gallery, fmt.Errorf("cannot decode gallery response: %w", err)
	}
	return gallery, nil
}

// FetchPage satisfies the gallery controller's Fetcher interface.
func (c *APIClient) FetchPage(ctx context.Context, threadId int64, query api.GalleryQuery, page int) (api.GalleryResponse, error) {
	return c.GetGallery(ctx, threadId, query, page)
}
