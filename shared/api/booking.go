package api

import "github.com/nitespot-dev/nitespot/shared/domain"

// Request DTOs

type BookingRequest struct {
	Date   string `json:"date" validate:"required"`
	Time   string `json:"time" validate:"required"`
	Guests int    `json:"guests" validate:"required,min=1"`
	Notes  string `json:"notes"`
}

// Response DTOs

type BookingResponse struct {
	domain.Booking
}

type BookingListResponse struct {
	Bookings []domain.Booking `json:"bookings"`
}

// BookingFeedResponse pages a venue's bookings like a comment feed.
type BookingFeedResponse struct {
	Items      []domain.Booking `json:"items"`
	NextCursor *int64           `json:"next_cursor,omitempty"`
	HasMore    bool             `json:"has_more"`
}
