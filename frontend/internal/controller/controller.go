// Package controller drives incremental gallery fetching for the viewer:
// filter mutations are debounced into fresh fetches, late responses are
// discarded by token, and load-more accumulates pages onto the visible list.
package controller

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/threadlens/threadlens/shared/api"
)

// DefaultDebounce is how long filter mutations coalesce before a fetch fires.
const DefaultDebounce = 50 * time.Millisecond

// Fetcher retrieves one gallery page. The apiclient implements it.
type Fetcher interface {
	FetchPage(ctx context.Context, threadId int64, query api.GalleryQuery, page int) (api.GalleryResponse, error)
}

type State int

const (
	Idle State = iota
	LoadingFresh
	LoadingMore
)

func (s State) String() string {
	switch s {
	case LoadingFresh:
		return "loading_fresh"
	case LoadingMore:
		return "loading_more"
	default:
		return "idle"
	}
}

// Snapshot is the controller's externally visible state at one point in time.
type Snapshot struct {
	Title      string
	Slug       string
	Images     []api.GalleryImage
	Page       int
	HasMore    bool
	Total      int
	PostsCount int
	State      State
	Query      api.GalleryQuery
}

// Controller owns the gallery list for one thread. All methods are safe for
// concurrent use; callbacks are invoked outside the lock.
type Controller struct {
	fetcher  Fetcher
	threadId int64
	debounce time.Duration

	// OnUpdate fires after every applied response. OnLocation fires only after
	// a successful fresh fetch, with the canonical shareable URL; it must not
	// navigate. OnError reports failed fetches; the list is left untouched.
	OnUpdate   func(Snapshot)
	OnLocation func(location string)
	OnError    func(error)

	mu         sync.Mutex
	timer      *time.Timer
	fetchId    uint64
	state      State
	query      api.GalleryQuery
	title      string
	slug       string
	images     []api.GalleryImage
	page       int
	hasMore    bool
	total      int
	postsCount int
}

// New creates a controller for one thread. A non-positive debounce falls back
// to DefaultDebounce.
func New(fetcher Fetcher, threadId int64, slug string, debounce time.Duration) *Controller {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Controller{
		fetcher:  fetcher,
		threadId: threadId,
		slug:     slug,
		debounce: debounce,
	}
}

// Seed installs a server-rendered first page without fetching.
func (c *Controller) Seed(resp api.GalleryResponse, query api.GalleryQuery) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = query
	c.applyLocked(resp, false)
}

func (c *Controller) SetUsername(v string) {
	c.mutate(func(q *api.GalleryQuery) { q.Username = v })
}

func (c *Controller) SetMinPosition(v int) {
	c.mutate(func(q *api.GalleryQuery) { q.PostNumber = v })
}

func (c *Controller) SetFromDate(v string) {
	c.mutate(func(q *api.GalleryQuery) { q.FromDate = v })
}

func (c *Controller) SetToDate(v string) {
	c.mutate(func(q *api.GalleryQuery) { q.ToDate = v })
}

func (c *Controller) ClearFilters() {
	c.mutate(func(q *api.GalleryQuery) { *q = api.GalleryQuery{} })
}

func (c *Controller) HasFilters() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.query.IsZero()
}

// mutate applies one filter change and (re)arms the debounce timer. Rapid
// successive mutations collapse into a single fetch of the final state.
func (c *Controller) mutate(apply func(*api.GalleryQuery)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	apply(&c.query)
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, c.Refresh)
}

// Refresh starts a fresh fetch of page zero immediately. Any in-flight fetch
// becomes stale; the current list stays visible until the response lands.
func (c *Controller) Refresh() {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.fetchId++
	id := c.fetchId
	c.state = LoadingFresh
	query := c.query
	c.mu.Unlock()

	go c.fetch(id, query, 0, false)
}

// LoadMore fetches the next page and appends it. A no-op unless the
// controller is idle with more pages available.
func (c *Controller) LoadMore() {
	c.mu.Lock()
	if c.state != Idle || !c.hasMore {
		c.mu.Unlock()
		return
	}
	c.fetchId++
	id := c.fetchId
	c.state = LoadingMore
	query := c.query
	page := c.page + 1
	c.mu.Unlock()

	go c.fetch(id, query, page, true)
}

func (c *Controller) fetch(id uint64, query api.GalleryQuery, page int, more bool) {
	resp, err := c.fetcher.FetchPage(context.Background(), c.threadId, query, page)

	c.mu.Lock()
	if id != c.fetchId {
		// a newer fetch owns the state now
		c.mu.Unlock()
		return
	}
	if err != nil {
		c.state = Idle
		c.mu.Unlock()
		if c.OnError != nil {
			c.OnError(err)
		}
		return
	}
	c.applyLocked(resp, more)
	snap := c.snapshotLocked()
	location := c.locationLocked()
	c.mu.Unlock()

	if c.OnUpdate != nil {
		c.OnUpdate(snap)
	}
	if !more && c.OnLocation != nil {
		c.OnLocation(location)
	}
}

func (c *Controller) applyLocked(resp api.GalleryResponse, more bool) {
	if more {
		c.images = append(c.images, resp.Images...)
	} else {
		c.images = resp.Images
	}
	c.title = resp.Title
	if resp.Slug != "" {
		c.slug = resp.Slug
	}
	c.page = resp.Page
	c.hasMore = resp.HasMore
	c.total = resp.Total
	c.postsCount = resp.PostsCount
	c.state = Idle
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	images := make([]api.GalleryImage, len(c.images))
	copy(images, c.images)
	return Snapshot{
		Title:      c.title,
		Slug:       c.slug,
		Images:     images,
		Page:       c.page,
		HasMore:    c.hasMore,
		Total:      c.total,
		PostsCount: c.postsCount,
		State:      c.state,
		Query:      c.query,
	}
}

// Location returns the canonical shareable URL for the current filters.
func (c *Controller) Location() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.locationLocked()
}

// locationLocked builds the canonical shareable URL for the current filters.
func (c *Controller) locationLocked() string {
	base := fmt.Sprintf("/gallery/%d", c.threadId)
	if c.slug != "" {
		base = fmt.Sprintf("/gallery/%s/%d", url.PathEscape(c.slug), c.threadId)
	}
	if enc := c.query.Values().Encode(); enc != "" {
		return base + "?" + enc
	}
	return base
}

// Stop cancels any pending debounce timer. In-flight fetches finish on their
// own and are token-checked as usual.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
