package pg

import (
	"fmt"

	"github.com/nitespot-dev/nitespot/shared/domain"
)

// RefreshBookingStats rebuilds the venue_booking_stats materialized view.
// Called on the cron schedule and after booking writes would be too chatty,
// so slightly stale counts are accepted.
func (s *Storage) RefreshBookingStats() error {
	_, err := s.db.Exec(`REFRESH MATERIALIZED VIEW CONCURRENTLY venue_booking_stats`)
	if err != nil {
		return fmt.Errorf("failed to refresh booking stats: %w", err)
	}
	return nil
}

// TopVenues returns the most booked venues from the materialized view.
func (s *Storage) TopVenues(limit int) ([]domain.VenueBookingStat, error) {
	rows, err := s.db.Query(`
		SELECT venue_id, venue_name, booking_count
		FROM venue_booking_stats
		ORDER BY booking_count DESC, venue_name ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top venues: %w", err)
	}
	defer rows.Close()

	var stats []domain.VenueBookingStat
	for rows.Next() {
		var st domain.VenueBookingStat
		if err := rows.Scan(&st.VenueId, &st.VenueName, &st.BookingCount); err != nil {
			return nil, fmt.Errorf("failed to scan venue stat: %w", err)
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating venue stats: %w", err)
	}
	return stats, nil
}

// Totals counts every entity in one round trip.
func (s *Storage) Totals() (domain.AnalyticsTotals, error) {
	var t domain.AnalyticsTotals
	err := s.db.QueryRow(`
		SELECT
			(SELECT count(*) FROM users),
			(SELECT count(*) FROM venues),
			(SELECT count(*) FROM events),
			(SELECT count(*) FROM bookings),
			(SELECT count(*) FROM comments)`,
	).Scan(&t.Users, &t.Venues, &t.Events, &t.Bookings, &t.Comments)
	if err != nil {
		return domain.AnalyticsTotals{}, fmt.Errorf("failed to query totals: %w", err)
	}
	return t, nil
}
