package controller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threadlens/threadlens/shared/api"
)

type MockFetcher struct {
	MockFetchPage func(ctx context.Context, threadId int64, query api.GalleryQuery, page int) (api.GalleryResponse, error)
}

func (m *MockFetcher) FetchPage(ctx context.Context, threadId int64, query api.GalleryQuery, page int) (api.GalleryResponse, error) {
	if m.MockFetchPage != nil {
		return m.MockFetchPage(ctx, threadId, query, page)
	}
	return api.GalleryResponse{}, nil
}

func pageResponse(page, total int, names ...string) api.GalleryResponse {
	images := make([]api.GalleryImage, len(names))
	for i, n := range names {
		images[i] = api.GalleryImage{FileName: n}
	}
	return api.GalleryResponse{
		Title:   "Cats",
		Slug:    "cats",
		Id:      9,
		Images:  images,
		Page:    page,
		HasMore: (page+1)*30 < total,
		Total:   total,
	}
}

func fileNames(images []api.GalleryImage) []string {
	names := make([]string, len(images))
	for i, img := range images {
		names[i] = img.FileName
	}
	return names
}

func waitUpdate(t *testing.T, updates <-chan Snapshot) Snapshot {
	t.Helper()
	select {
	case s := <-updates:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for update")
		return Snapshot{}
	}
}

func TestDebounceCollapsesMutations(t *testing.T) {
	var mu sync.Mutex
	var calls []api.GalleryQuery
	fetcher := &MockFetcher{
		MockFetchPage: func(ctx context.Context, threadId int64, query api.GalleryQuery, page int) (api.GalleryResponse, error) {
			mu.Lock()
			calls = append(calls, query)
			mu.Unlock()
			return pageResponse(page, 10, "a"), nil
		},
	}

	c := New(fetcher, 9, "cats", 10*time.Millisecond)
	defer c.Stop()
	updates := make(chan Snapshot, 8)
	c.OnUpdate = func(s Snapshot) { updates <- s }

	// three rapid mutations, one fetch of the final state
	c.SetUsername("a")
	c.SetFromDate("2024-03-15")
	c.SetUsername("alice")

	waitUpdate(t, updates)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, calls, 1)
	assert.Equal(t, api.GalleryQuery{Username: "alice", FromDate: "2024-03-15"}, calls[0])
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	releases := make(chan chan api.GalleryResponse, 4)
	fetcher := &MockFetcher{
		MockFetchPage: func(ctx context.Context, threadId int64, query api.GalleryQuery, page int) (api.GalleryResponse, error) {
			ch := make(chan api.GalleryResponse)
			releases <- ch
			return <-ch, nil
		},
	}

	c := New(fetcher, 9, "cats", time.Millisecond)
	defer c.Stop()
	updates := make(chan Snapshot, 8)
	c.OnUpdate = func(s Snapshot) { updates <- s }

	c.Refresh()
	first := <-releases
	c.Refresh()
	second := <-releases

	// the newer fetch answers first and wins
	second <- pageResponse(0, 1, "newer")
	snap := waitUpdate(t, updates)
	assert.Equal(t, []string{"newer"}, fileNames(snap.Images))

	// the older response arrives late and must change nothing
	first <- pageResponse(0, 1, "older")
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, []string{"newer"}, fileNames(c.Snapshot().Images))
	select {
	case <-updates:
		t.Fatal("stale response must not produce an update")
	default:
	}
}

func TestLoadMoreAppends(t *testing.T) {
	fetcher := &MockFetcher{
		MockFetchPage: func(ctx context.Context, threadId int64, query api.GalleryQuery, page int) (api.GalleryResponse, error) {
			require.Equal(t, 1, page)
			return pageResponse(1, 60, "c", "d"), nil
		},
	}

	c := New(fetcher, 9, "cats", time.Millisecond)
	defer c.Stop()
	updates := make(chan Snapshot, 8)
	c.OnUpdate = func(s Snapshot) { updates <- s }
	locations := make(chan string, 8)
	c.OnLocation = func(l string) { locations <- l }

	c.Seed(pageResponse(0, 60, "a", "b"), api.GalleryQuery{})

	c.LoadMore()
	snap := waitUpdate(t, updates)
	assert.Equal(t, []string{"a", "b", "c", "d"}, fileNames(snap.Images))
	assert.Equal(t, 1, snap.Page)
	assert.False(t, snap.HasMore)
	assert.Equal(t, Idle, snap.State)

	select {
	case l := <-locations:
		t.Fatalf("load more must not sync location, got %q", l)
	default:
	}
}

func TestLoadMoreGating(t *testing.T) {
	t.Run("no-op when nothing more to load", func(t *testing.T) {
		fetcher := &MockFetcher{
			MockFetchPage: func(ctx context.Context, threadId int64, query api.GalleryQuery, page int) (api.GalleryResponse, error) {
				t.Fatal("fetch must not run when hasMore is false")
				return api.GalleryResponse{}, nil
			},
		}
		c := New(fetcher, 9, "cats", time.Millisecond)
		defer c.Stop()
		c.Seed(pageResponse(0, 2, "a"), api.GalleryQuery{})

		c.LoadMore()
		time.Sleep(20 * time.Millisecond)
	})

	t.Run("no-op while a fetch is in flight", func(t *testing.T) {
		releases := make(chan chan api.GalleryResponse, 4)
		fetcher := &MockFetcher{
			MockFetchPage: func(ctx context.Context, threadId int64, query api.GalleryQuery, page int) (api.GalleryResponse, error) {
				ch := make(chan api.GalleryResponse)
				releases <- ch
				return <-ch, nil
			},
		}
		c := New(fetcher, 9, "cats", time.Millisecond)
		defer c.Stop()
		c.Seed(pageResponse(0, 95, "a"), api.GalleryQuery{})

		c.LoadMore()
		in := <-releases
		c.LoadMore() // still LoadingMore, must not start a second fetch

		select {
		case <-releases:
			t.Fatal("second fetch started while one was in flight")
		case <-time.After(20 * time.Millisecond):
		}
		in <- pageResponse(1, 95, "b")
	})
}

func TestLoadMoreFailureKeepsList(t *testing.T) {
	mockErr := errors.New("backend unavailable")
	fetcher := &MockFetcher{
		MockFetchPage: func(ctx context.Context, threadId int64, query api.GalleryQuery, page int) (api.GalleryResponse, error) {
			return api.GalleryResponse{}, mockErr
		},
	}

	c := New(fetcher, 9, "cats", time.Millisecond)
	defer c.Stop()
	failures := make(chan error, 8)
	c.OnError = func(err error) { failures <- err }

	c.Seed(pageResponse(0, 95, "a", "b"), api.GalleryQuery{})
	c.LoadMore()

	select {
	case err := <-failures:
		assert.ErrorIs(t, err, mockErr)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for error callback")
	}

	snap := c.Snapshot()
	assert.Equal(t, []string{"a", "b"}, fileNames(snap.Images))
	assert.Equal(t, Idle, snap.State)
	assert.Equal(t, 0, snap.Page)
}

func TestFreshFailureKeepsList(t *testing.T) {
	mockErr := errors.New("backend unavailable")
	fetcher := &MockFetcher{
		MockFetchPage: func(ctx context.Context, threadId int64, query api.GalleryQuery, page int) (api.GalleryResponse, error) {
			return api.GalleryResponse{}, mockErr
		},
	}

	c := New(fetcher, 9, "cats", time.Millisecond)
	defer c.Stop()
	failures := make(chan error, 8)
	c.OnError = func(err error) { failures <- err }

	c.Seed(pageResponse(0, 2, "a"), api.GalleryQuery{})
	c.Refresh()

	select {
	case <-failures:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for error callback")
	}
	assert.Equal(t, []string{"a"}, fileNames(c.Snapshot().Images))
}

func TestFreshFetchInvalidatesInFlightLoadMore(t *testing.T) {
	releases := make(chan chan api.GalleryResponse, 4)
	fetcher := &MockFetcher{
		MockFetchPage: func(ctx context.Context, threadId int64, query api.GalleryQuery, page int) (api.GalleryResponse, error) {
			ch := make(chan api.GalleryResponse)
			releases <- ch
			return <-ch, nil
		},
	}

	c := New(fetcher, 9, "cats", time.Millisecond)
	defer c.Stop()
	updates := make(chan Snapshot, 8)
	c.OnUpdate = func(s Snapshot) { updates <- s }

	c.Seed(pageResponse(0, 95, "a"), api.GalleryQuery{})

	c.LoadMore()
	more := <-releases
	c.Refresh()
	fresh := <-releases

	// the superseded load-more answer is dropped even though it arrives first
	more <- pageResponse(1, 95, "b")
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, []string{"a"}, fileNames(c.Snapshot().Images))

	fresh <- pageResponse(0, 1, "replacement")
	snap := waitUpdate(t, updates)
	assert.Equal(t, []string{"replacement"}, fileNames(snap.Images))
}

func TestLocationSync(t *testing.T) {
	fetcher := &MockFetcher{
		MockFetchPage: func(ctx context.Context, threadId int64, query api.GalleryQuery, page int) (api.GalleryResponse, error) {
			return pageResponse(page, 1, "a"), nil
		},
	}

	c := New(fetcher, 9, "cats", time.Millisecond)
	defer c.Stop()
	locations := make(chan string, 8)
	c.OnLocation = func(l string) { locations <- l }

	c.SetUsername("alice")
	c.SetToDate("2024-03-15")

	select {
	case l := <-locations:
		assert.Equal(t, "/gallery/cats/9?to_date=2024-03-15&username=alice", l)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for location sync")
	}
}

func TestFilters(t *testing.T) {
	c := New(&MockFetcher{}, 9, "cats", time.Hour)
	defer c.Stop()

	assert.False(t, c.HasFilters())
	c.SetUsername("alice")
	assert.True(t, c.HasFilters())
	c.SetMinPosition(5)
	c.ClearFilters()
	assert.False(t, c.HasFilters())
}
