package domain

import "time"

type BookingCreationData struct {
	VenueId   VenueId
	UserId    UserId
	UserName  string
	UserEmail Email
	Date      string // YYYY-MM-DD
	Time      string // HH:MM
	Guests    int
	Notes     string
}

type Booking struct {
	Id        BookingId
	VenueId   VenueId
	VenueName string
	UserId    UserId
	UserName  string
	UserEmail Email
	Date      string
	Time      string
	Guests    int
	Notes     string
	CreatedAt time.Time
}

func BookingKey(b Booking) int64 {
	return b.CreatedAt.UnixMicro()
}
