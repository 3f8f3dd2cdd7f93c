package api

import "github.com/nitespot-dev/nitespot/shared/domain"

// Request DTOs

type CommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// Response DTOs

// CommentFeedResponse is one page of a comment feed. NextCursor is the
// ordering key (microseconds) to pass back as ?after= for the next page.
type CommentFeedResponse struct {
	Items      []domain.Comment `json:"items"`
	NextCursor *int64           `json:"next_cursor,omitempty"`
	HasMore    bool             `json:"has_more"`
}

type CommentResponse struct {
	domain.Comment
}
