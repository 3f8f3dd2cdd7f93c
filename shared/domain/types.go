package domain

import "github.com/lib/pq"

type (
	Email    = string
	Password = string

	// Store-assigned opaque document ids (uuid strings).
	UserId    = string
	VenueId   = string
	EventId   = string
	CommentId = string
	BookingId = string

	Role = string

	// Ids lists referenced documents (owned venues, bookmarked events).
	Ids = pq.StringArray

	Amenities = pq.StringArray
)

const (
	RoleUser  Role = "user"
	RoleOwner Role = "owner"
	RoleAdmin Role = "admin"
)
