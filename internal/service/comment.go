package service

import (
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/nitespot-dev/nitespot/shared/domain"
	internal_errors "github.com/nitespot-dev/nitespot/shared/errors"
)

const maxCommentLen = 2000

// Page is one slice of a feed in wire form: next_cursor is the ordering
// key (micros) of the last item, absent when the feed is exhausted.
type Page[T any] struct {
	Items      []T
	NextCursor *int64
	HasMore    bool
}

type CommentService interface {
	Feed(parent domain.FeedParent, after *int64, limit int) (Page[domain.Comment], error)
	Create(viewer *domain.Viewer, parent domain.FeedParent, content string) (domain.Comment, error)
	Update(viewer *domain.Viewer, id domain.CommentId, content string) error
	Delete(viewer *domain.Viewer, id domain.CommentId) error
}

type Comment struct {
	storage  CommentStorage
	users    CommentUserStorage
	policy   *bluemonday.Policy
	pageSize int
}

type CommentStorage interface {
	CreateComment(data domain.CommentCreationData) (domain.Comment, error)
	Comment(id domain.CommentId) (domain.Comment, error)
	Comments(parent domain.FeedParent, after *time.Time, limit int) ([]domain.Comment, error)
	UpdateComment(id domain.CommentId, authorId domain.UserId, content string) error
	DeleteComment(id domain.CommentId, authorId domain.UserId) error
}

// CommentUserStorage resolves the viewer to the denormalized author
// snapshot stored on each comment.
type CommentUserStorage interface {
	UserById(id domain.UserId) (domain.User, error)
}

func NewComment(storage CommentStorage, users CommentUserStorage, pageSize int) *Comment {
	return &Comment{
		storage: storage,
		users:   users,
		// comments are plain text; strip all markup
		policy:   bluemonday.StrictPolicy(),
		pageSize: pageSize,
	}
}

// Feed returns one page of the parent's comments, newest first.
// A nil cursor requests the newest page.
func (c *Comment) Feed(parent domain.FeedParent, after *int64, limit int) (Page[domain.Comment], error) {
	if limit <= 0 || limit > 100 {
		limit = c.pageSize
	}

	var cursor *time.Time
	if after != nil {
		t := time.UnixMicro(*after).UTC()
		cursor = &t
	}

	comments, err := c.storage.Comments(parent, cursor, limit)
	if err != nil {
		return Page[domain.Comment]{}, err
	}

	page := Page[domain.Comment]{Items: comments, HasMore: len(comments) == limit}
	if len(comments) > 0 {
		k := domain.CommentKey(comments[len(comments)-1])
		page.NextCursor = &k
	}
	return page, nil
}

func (c *Comment) Create(viewer *domain.Viewer, parent domain.FeedParent, content string) (domain.Comment, error) {
	content, err := c.sanitize(content)
	if err != nil {
		return domain.Comment{}, err
	}

	user, err := c.users.UserById(viewer.Id)
	if err != nil {
		return domain.Comment{}, err
	}

	return c.storage.CreateComment(domain.CommentCreationData{
		Parent:  parent,
		Author:  domain.CommentAuthor{Id: user.Id, Name: user.Username, AvatarURL: user.AvatarURL},
		Content: content,
	})
}

func (c *Comment) Update(viewer *domain.Viewer, id domain.CommentId, content string) error {
	content, err := c.sanitize(content)
	if err != nil {
		return err
	}

	authorId, err := c.authorize(viewer, id)
	if err != nil {
		return err
	}
	return c.storage.UpdateComment(id, authorId, content)
}

func (c *Comment) Delete(viewer *domain.Viewer, id domain.CommentId) error {
	authorId, err := c.authorize(viewer, id)
	if err != nil {
		return err
	}
	return c.storage.DeleteComment(id, authorId)
}

// authorize loads the comment and applies the ownership predicate.
// Returns the author-id guard for the storage write: the viewer's id
// for authors, empty for admins.
func (c *Comment) authorize(viewer *domain.Viewer, id domain.CommentId) (domain.UserId, error) {
	comment, err := c.storage.Comment(id)
	if err != nil {
		return "", err
	}
	if !domain.CanModifyComment(viewer, &comment) {
		return "", &internal_errors.ErrorWithStatusCode{Message: "You can only modify your own comments", StatusCode: http.StatusForbidden}
	}
	if viewer.Admin() {
		return "", nil
	}
	return viewer.Id, nil
}

func (c *Comment) sanitize(content string) (string, error) {
	content = strings.TrimSpace(c.policy.Sanitize(content))
	if content == "" {
		return "", internal_errors.BadRequest("Comment cannot be empty")
	}
	if utf8.RuneCountInString(content) > maxCommentLen {
		return "", internal_errors.BadRequest("Comment is too long")
	}
	return content, nil
}
