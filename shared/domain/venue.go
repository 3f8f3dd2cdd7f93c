package domain

import "time"

// to iterate thru layers: handler -> service -> storage
type VenueCreationData struct {
	Name         string
	Location     string
	Description  string
	OpeningHours string
	Rating       float64
	IsPremium    bool
	ImageURL     string
	Amenities    Amenities
}

type Venue struct {
	Id           VenueId
	Name         string
	Location     string
	Description  string
	OpeningHours string
	Rating       float64
	IsPremium    bool
	ImageURL     string
	Amenities    Amenities
	CreatedAt    time.Time
}

// VenueWithStatus decorates a venue with its live open/closed state.
// Computed per request, never persisted.
type VenueWithStatus struct {
	Venue
	Open          bool
	StatusMessage string
}

// VenueList is the home feed: premium carousel on top, the rest below,
// both carrying live status badges.
type VenueList struct {
	Premium []VenueWithStatus
	Regular []VenueWithStatus
}
