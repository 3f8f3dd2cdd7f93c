package service

import (
	"context"
	"time"

	"github.com/nitespot-dev/nitespot/shared/domain"
	"github.com/nitespot-dev/nitespot/shared/feed"
)

// Analytics is the admin dashboard payload.
type Analytics struct {
	Totals         domain.AnalyticsTotals
	TopVenues      []domain.VenueBookingStat
	RecentBookings []domain.Booking
}

type AnalyticsService interface {
	Overview(ctx context.Context) (Analytics, error)
}

type AnalyticsStorage interface {
	Totals() (domain.AnalyticsTotals, error)
	TopVenues(limit int) ([]domain.VenueBookingStat, error)
	Bookings(after *time.Time, limit int) ([]domain.Booking, error)
}

type AnalyticsStats struct {
	storage     AnalyticsStorage
	topVenues   int
	recentLimit int
}

func NewAnalytics(storage AnalyticsStorage, topVenues, recentLimit int) *AnalyticsStats {
	return &AnalyticsStats{storage: storage, topVenues: topVenues, recentLimit: recentLimit}
}

type analyticsBookingSource struct {
	storage AnalyticsStorage
}

func (s analyticsBookingSource) FetchPage(_ context.Context, after *feed.Cursor, limit int) ([]domain.Booking, error) {
	return s.storage.Bookings(cursorTime(after), limit)
}

// Overview assembles the dashboard: entity totals, the most booked
// venues and the newest bookings.
func (a *AnalyticsStats) Overview(ctx context.Context) (Analytics, error) {
	totals, err := a.storage.Totals()
	if err != nil {
		return Analytics{}, err
	}

	top, err := a.storage.TopVenues(a.topVenues)
	if err != nil {
		return Analytics{}, err
	}

	recent := feed.New[domain.Booking](analyticsBookingSource{a.storage}, nil, domain.BookingKey, a.recentLimit)
	if err := recent.LoadFirstPage(ctx); err != nil {
		return Analytics{}, err
	}

	return Analytics{
		Totals:         totals,
		TopVenues:      top,
		RecentBookings: recent.Items(),
	}, nil
}
