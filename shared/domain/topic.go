package domain

// Topic is the discussion thread a gallery is built from. Read-only here;
// the content store owns it.
type Topic struct {
	Id         TopicId
	Title      string
	Slug       Slug
	CategoryId CategoryId
	PostsCount int
}
