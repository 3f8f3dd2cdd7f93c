package api

import "github.com/nitespot-dev/nitespot/shared/domain"

// Response DTOs

type AnalyticsResponse struct {
	Totals         domain.AnalyticsTotals    `json:"totals"`
	TopVenues      []domain.VenueBookingStat `json:"top_venues"`
	RecentBookings []domain.Booking          `json:"recent_bookings"`
}
