package domain

import "time"

// GalleryPageSize is the fixed number of images per gallery page.
const GalleryPageSize = 30

// GalleryCriteria is the normalized filter set for one gallery query.
// Zero values mean "no filter": a nil AuthorId, a zero MinPosition and nil
// date bounds leave the visible set untouched. Page is always >= 0.
type GalleryCriteria struct {
	AuthorId    *UserId
	MinPosition int
	From        *time.Time // inclusive lower bound on post creation
	Before      *time.Time // exclusive upper bound (start of the day after to_date)
	Page        int
}

// GalleryRef is one surviving deduplicated occurrence: the kept reference of
// an upload plus the post coordinates the ordering is derived from.
type GalleryRef struct {
	RefId      RefId
	UploadId   UploadId
	PostId     PostId
	PostNumber int
	AuthorId   UserId
}

// ResolvedImage is a gallery entry ready for presentation.
type ResolvedImage struct {
	UploadId     UploadId
	ThumbnailUrl string
	Url          string
	Width        int
	Height       int
	Filesize     string // human readable, e.g. "1.2 MiB"
	FileName     string
	DownloadUrl  string
	Username     Username // empty when the author no longer exists
	PostId       PostId
	PostNumber   int
	PostUrl      string
}

// GalleryPage is one slice of a topic's deduplicated image stream.
// Invariant: HasMore == (Page+1)*GalleryPageSize < Total.
type GalleryPage struct {
	Title      string
	Slug       Slug
	TopicId    TopicId
	Images     []ResolvedImage
	Page       int
	HasMore    bool
	Total      int
	PostsCount int
}
