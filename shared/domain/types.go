package domain

type (
	TopicId    = int64
	PostId     = int64
	UserId     = int64
	UploadId   = int64
	RefId      = int64
	CategoryId = int64
	GroupId    = int64

	Username = string
	Slug     = string
)

// EveryoneGroup is the sentinel group id meaning "anyone, including anonymous".
// When it appears in an allowed-groups list no membership check is needed.
const EveryoneGroup GroupId = 0
