package domain

import "time"

type EventCreationData struct {
	Name        string
	Description string
	Date        string // YYYY-MM-DD
	VenueId     VenueId
	ImageURL    string
	CreatedBy   Email
}

type Event struct {
	Id          EventId
	Name        string
	Description string
	Date        string
	VenueId     VenueId
	ImageURL    string
	CreatedBy   Email
	CreatedAt   time.Time
}
