package domain

import "time"

// Upload is an uploaded image file. Width/height are nil when dimensions were
// never extracted; such uploads are not gallery material.
type Upload struct {
	Id               UploadId
	UserId           UserId
	Width            *int
	Height           *int
	ThumbnailWidth   *int
	ThumbnailHeight  *int
	Extension        string
	Filesize         int64
	Url              string
	OriginalFilename string
	Secure           bool
}

// TargetThumbnailSize resolves the thumbnail dimensions for an upload:
// the declared thumbnail size, falling back to the native size per axis pair.
func (u *Upload) TargetThumbnailSize() (int, int) {
	w, h := 0, 0
	if u.Width != nil {
		w = *u.Width
	}
	if u.Height != nil {
		h = *u.Height
	}
	if u.ThumbnailWidth != nil && u.ThumbnailHeight != nil {
		w, h = *u.ThumbnailWidth, *u.ThumbnailHeight
	}
	return w, h
}

// OptimizedImage is a derived thumbnail of an upload. The
// (upload, width, height, extension) tuple is unique.
type OptimizedImage struct {
	Id        int64
	UploadId  UploadId
	Width     int
	Height    int
	Extension string
	Url       string
}

// UploadReference links an upload to one owning entity. TargetType names the
// owner kind; many references may share an upload.
type UploadReference struct {
	Id         RefId
	UploadId   UploadId
	TargetType string
	TargetId   int64
	CreatedAt  time.Time
}

// SystemAssetKinds are owner kinds whose references disqualify an upload from
// every gallery, regardless of which reference is being considered. Content-like
// kinds (Post, ChatMessage, Draft, PostLocalization, ReviewableQueuedPost,
// Category) do not disqualify.
var SystemAssetKinds = []string{
	"CustomEmoji",
	"UserAvatar",
	"User",
	"UserProfile",
	"ThemeField",
	"ThemeSetting",
	"ThemeSiteSetting",
	"SiteSetting",
	"Badge",
	"Group",
}
