package domain

// VenueBookingStat is one row of the venue_booking_stats view.
type VenueBookingStat struct {
	VenueId      VenueId
	VenueName    string
	BookingCount int64
}

type AnalyticsTotals struct {
	Users    int64
	Venues   int64
	Events   int64
	Bookings int64
	Comments int64
}
