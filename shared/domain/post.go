package domain

import (
	"database/sql"
	"time"
)

type PostType int16

const (
	PostTypeRegular         PostType = 1
	PostTypeModeratorAction PostType = 2
	PostTypeSmallAction     PostType = 3
	PostTypeWhisper         PostType = 4
)

// Post is a single content item within a topic. PostNumber is its sequence
// position, monotonic per topic.
type Post struct {
	Id         PostId
	TopicId    TopicId
	AuthorId   UserId
	PostNumber int
	Type       PostType
	Hidden     bool
	DeletedAt  sql.NullTime
	CreatedAt  time.Time
}
