package pg

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threadlens/threadlens/shared/domain"
)

func galleryRefs(t *testing.T, topicId int64, caller *domain.Caller, criteria domain.GalleryCriteria, minSize int) ([]domain.GalleryRef, int) {
	t.Helper()
	refs, total, err := storage.GalleryRefs(context.Background(), topicId, caller, criteria, minSize)
	require.NoError(t, err)
	return refs, total
}

func uploadIds(refs []domain.GalleryRef) []int64 {
	ids := make([]int64, len(refs))
	for i, r := range refs {
		ids[i] = r.UploadId
	}
	return ids
}

func TestGalleryRefsDedupAndOrder(t *testing.T) {
	author := createUser(t, uniqueName("author"))
	topic := createTopic(t, "dedup", 1, 10)

	early := createPost(t, postSeed{topic: topic, author: author, number: 2})
	late := createPost(t, postSeed{topic: topic, author: author, number: 5})

	// upload A appears in both posts; only its earliest occurrence survives
	uploadA := createUpload(t, author, 400, 300)
	refEarly := createRef(t, uploadA, "Post", early)
	createRef(t, uploadA, "Post", late)

	uploadB := createUpload(t, author, 400, 300)
	createRef(t, uploadB, "Post", late)

	refs, total := galleryRefs(t, topic, nil, domain.GalleryCriteria{}, 0)

	assert.Equal(t, 2, total)
	require.Len(t, refs, 2)
	assert.Equal(t, uploadA, refs[0].UploadId)
	assert.Equal(t, refEarly, refs[0].RefId)
	assert.Equal(t, 2, refs[0].PostNumber)
	assert.Equal(t, uploadB, refs[1].UploadId)
	assert.Equal(t, 5, refs[1].PostNumber)
}

func TestGalleryRefsSamePostOrderedByRefId(t *testing.T) {
	author := createUser(t, uniqueName("author"))
	topic := createTopic(t, "same post", 1, 10)
	post := createPost(t, postSeed{topic: topic, author: author, number: 1})

	uploadA := createUpload(t, author, 400, 300)
	uploadB := createUpload(t, author, 400, 300)
	refA := createRef(t, uploadA, "Post", post)
	refB := createRef(t, uploadB, "Post", post)

	refs, _ := galleryRefs(t, topic, nil, domain.GalleryCriteria{}, 0)

	require.Len(t, refs, 2)
	assert.Equal(t, refA, refs[0].RefId)
	assert.Equal(t, refB, refs[1].RefId)
}

func TestGalleryRefsSystemAssetExclusion(t *testing.T) {
	author := createUser(t, uniqueName("author"))
	topic := createTopic(t, "system assets", 1, 10)
	post := createPost(t, postSeed{topic: topic, author: author, number: 1})

	// one legitimate post reference plus an avatar reference: disqualified
	tainted := createUpload(t, author, 400, 300)
	createRef(t, tainted, "Post", post)
	createRef(t, tainted, "UserAvatar", author)

	// content-like secondary references do not disqualify
	clean := createUpload(t, author, 400, 300)
	createRef(t, clean, "Post", post)
	createRef(t, clean, "ChatMessage", 12345)

	refs, total := galleryRefs(t, topic, nil, domain.GalleryCriteria{}, 0)

	assert.Equal(t, 1, total)
	require.Len(t, refs, 1)
	assert.Equal(t, clean, refs[0].UploadId)

	t.Run("exclusion survives any filter", func(t *testing.T) {
		refs, total := galleryRefs(t, topic, nil, domain.GalleryCriteria{AuthorId: &author}, 0)
		assert.Equal(t, 1, total)
		require.Len(t, refs, 1)
		assert.Equal(t, clean, refs[0].UploadId)
	})
}

func TestGalleryRefsPostVisibility(t *testing.T) {
	author := createUser(t, uniqueName("author"))
	topic := createTopic(t, "visibility", 1, 10)

	visible := createPost(t, postSeed{topic: topic, author: author, number: 1})
	hidden := createPost(t, postSeed{topic: topic, author: author, number: 2, hidden: true})
	deleted := createPost(t, postSeed{topic: topic, author: author, number: 3, deleted: true})
	whisper := createPost(t, postSeed{topic: topic, author: author, number: 4, postType: int(domain.PostTypeWhisper)})
	smallAction := createPost(t, postSeed{topic: topic, author: author, number: 5, postType: int(domain.PostTypeSmallAction)})

	expected := map[int64]int64{}
	for _, post := range []int64{visible, hidden, deleted, whisper, smallAction} {
		upload := createUpload(t, author, 400, 300)
		createRef(t, upload, "Post", post)
		expected[post] = upload
	}

	t.Run("anonymous sees only regular visible posts", func(t *testing.T) {
		refs, total := galleryRefs(t, topic, nil, domain.GalleryCriteria{}, 0)
		assert.Equal(t, 1, total)
		require.Len(t, refs, 1)
		assert.Equal(t, expected[visible], refs[0].UploadId)
	})

	t.Run("staff additionally sees whispers", func(t *testing.T) {
		staff := &domain.Caller{Id: author, Staff: true}
		refs, total := galleryRefs(t, topic, staff, domain.GalleryCriteria{}, 0)
		assert.Equal(t, 2, total)
		assert.ElementsMatch(t, []int64{expected[visible], expected[whisper]}, uploadIds(refs))
	})
}

func TestGalleryRefsIgnoredAuthors(t *testing.T) {
	author := createUser(t, uniqueName("author"))
	viewer := createUser(t, uniqueName("viewer"))
	topic := createTopic(t, "ignored", 1, 10)
	post := createPost(t, postSeed{topic: topic, author: author, number: 1})

	upload := createUpload(t, author, 400, 300)
	createRef(t, upload, "Post", post)

	ignoreUser(t, viewer, author)

	t.Run("ignoring viewer does not see the author's images", func(t *testing.T) {
		caller := &domain.Caller{Id: viewer, Username: "viewer"}
		refs, total := galleryRefs(t, topic, caller, domain.GalleryCriteria{}, 0)
		assert.Zero(t, total)
		assert.Empty(t, refs)
	})

	t.Run("anonymous ignores nobody", func(t *testing.T) {
		refs, total := galleryRefs(t, topic, nil, domain.GalleryCriteria{}, 0)
		assert.Equal(t, 1, total)
		assert.Len(t, refs, 1)
	})
}

func TestGalleryRefsMinDimension(t *testing.T) {
	author := createUser(t, uniqueName("author"))
	topic := createTopic(t, "dimensions", 1, 10)
	post := createPost(t, postSeed{topic: topic, author: author, number: 1})

	exact := createUpload(t, author, 100, 100)
	short := createUpload(t, author, 100, 99)
	unknown := createUpload(t, author, 0, 0)
	for _, upload := range []int64{exact, short, unknown} {
		createRef(t, upload, "Post", post)
	}

	t.Run("bound is inclusive per axis", func(t *testing.T) {
		refs, total := galleryRefs(t, topic, nil, domain.GalleryCriteria{}, 100)
		assert.Equal(t, 1, total)
		require.Len(t, refs, 1)
		assert.Equal(t, exact, refs[0].UploadId)
	})

	t.Run("unknown dimensions never qualify", func(t *testing.T) {
		refs, _ := galleryRefs(t, topic, nil, domain.GalleryCriteria{}, 0)
		assert.NotContains(t, uploadIds(refs), unknown)
	})
}

func TestGalleryRefsCriteria(t *testing.T) {
	alice := createUser(t, uniqueName("alice"))
	bob := createUser(t, uniqueName("bob"))
	topic := createTopic(t, "criteria", 1, 10)

	march := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	april := time.Date(2024, 4, 2, 12, 0, 0, 0, time.UTC)

	postAlice := createPost(t, postSeed{topic: topic, author: alice, number: 1, created: march})
	postBob := createPost(t, postSeed{topic: topic, author: bob, number: 7, created: april})

	uploadAlice := createUpload(t, alice, 400, 300)
	createRef(t, uploadAlice, "Post", postAlice)
	uploadBob := createUpload(t, bob, 400, 300)
	createRef(t, uploadBob, "Post", postBob)

	t.Run("author filter", func(t *testing.T) {
		refs, total := galleryRefs(t, topic, nil, domain.GalleryCriteria{AuthorId: &alice}, 0)
		assert.Equal(t, 1, total)
		require.Len(t, refs, 1)
		assert.Equal(t, uploadAlice, refs[0].UploadId)
	})

	t.Run("minimum position is inclusive", func(t *testing.T) {
		refs, _ := galleryRefs(t, topic, nil, domain.GalleryCriteria{MinPosition: 7}, 0)
		require.Len(t, refs, 1)
		assert.Equal(t, uploadBob, refs[0].UploadId)
	})

	t.Run("date window", func(t *testing.T) {
		from := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
		before := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)
		refs, total := galleryRefs(t, topic, nil, domain.GalleryCriteria{From: &from, Before: &before}, 0)
		assert.Equal(t, 1, total)
		require.Len(t, refs, 1)
		assert.Equal(t, uploadAlice, refs[0].UploadId)
	})
}

func TestGalleryRefsPagination(t *testing.T) {
	author := createUser(t, uniqueName("author"))
	topic := createTopic(t, "pagination", 1, 50)

	const seeded = domain.GalleryPageSize + 5
	for i := 0; i < seeded; i++ {
		post := createPost(t, postSeed{topic: topic, author: author, number: i + 1})
		upload := createUpload(t, author, 400, 300)
		createRef(t, upload, "Post", post)
	}

	t.Run("first page is full", func(t *testing.T) {
		refs, total := galleryRefs(t, topic, nil, domain.GalleryCriteria{Page: 0}, 0)
		assert.Equal(t, seeded, total)
		assert.Len(t, refs, domain.GalleryPageSize)
		assert.Equal(t, 1, refs[0].PostNumber)
	})

	t.Run("last page holds the remainder", func(t *testing.T) {
		refs, total := galleryRefs(t, topic, nil, domain.GalleryCriteria{Page: 1}, 0)
		assert.Equal(t, seeded, total)
		assert.Len(t, refs, seeded-domain.GalleryPageSize)
		assert.Equal(t, domain.GalleryPageSize+1, refs[0].PostNumber)
	})

	t.Run("beyond the last page still reports the total", func(t *testing.T) {
		refs, total := galleryRefs(t, topic, nil, domain.GalleryCriteria{Page: 7}, 0)
		assert.Equal(t, seeded, total)
		assert.Empty(t, refs)
	})
}
