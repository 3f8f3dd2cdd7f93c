package domain

import "time"

// ParentKind scopes a comment feed to the entity it hangs off.
type ParentKind string

const (
	ParentVenue ParentKind = "venue"
	ParentEvent ParentKind = "event"
)

// FeedParent identifies one comment feed (a venue's or an event's).
type FeedParent struct {
	Kind ParentKind
	Id   string
}

type CommentAuthor struct {
	Id        UserId
	Name      string
	AvatarURL string
}

type Comment struct {
	Id        CommentId
	Parent    FeedParent
	Author    CommentAuthor
	Content   string
	CreatedAt time.Time
	EditedAt  *time.Time
}

// CommentKey is the feed ordering key: the store-assigned creation
// timestamp in microseconds. Postgres keeps timestamps at microsecond
// precision, so the round trip is exact.
func CommentKey(c Comment) int64 {
	return c.CreatedAt.UnixMicro()
}

type CommentCreationData struct {
	Parent  FeedParent
	Author  CommentAuthor
	Content string
}
