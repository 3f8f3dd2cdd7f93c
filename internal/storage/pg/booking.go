package pg

import (
	"fmt"
	"time"

	"github.com/nitespot-dev/nitespot/shared/domain"
)

const bookingColumns = `b.id, b.venue_id, v.name, b.user_id, b.user_name, b.user_email, b.date, b.booked_time, b.guests, b.notes, b.created AT TIME ZONE 'utc'`

// CreateBooking inserts a booking with a store-assigned creation timestamp
// (the feed ordering key) and returns the stored row with the venue name
// denormalized in.
func (s *Storage) CreateBooking(data domain.BookingCreationData) (domain.Booking, error) {
	created := time.Now().UTC().Round(time.Microsecond)

	b := domain.Booking{
		VenueId:   data.VenueId,
		UserId:    data.UserId,
		UserName:  data.UserName,
		UserEmail: data.UserEmail,
		Date:      data.Date,
		Time:      data.Time,
		Guests:    data.Guests,
		Notes:     data.Notes,
		CreatedAt: created,
	}
	err := s.db.QueryRow(`
		WITH inserted AS (
			INSERT INTO bookings(venue_id, user_id, user_name, user_email, date, booked_time, guests, notes, created)
			VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id, venue_id
		)
		SELECT i.id, v.name FROM inserted i JOIN venues v ON v.id = i.venue_id`,
		data.VenueId, data.UserId, data.UserName, data.UserEmail,
		data.Date, data.Time, data.Guests, data.Notes, created,
	).Scan(&b.Id, &b.VenueName)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("failed to insert booking: %w", err)
	}
	return b, nil
}

// Bookings returns one page of all bookings, newest first. Used by the
// admin feed and, with a nil cursor, by analytics.
func (s *Storage) Bookings(after *time.Time, limit int) ([]domain.Booking, error) {
	return s.bookingPage(`true`, nil, after, limit)
}

// VenueBookings pages one venue's bookings, newest first.
func (s *Storage) VenueBookings(venueId domain.VenueId, after *time.Time, limit int) ([]domain.Booking, error) {
	return s.bookingPage(`b.venue_id = $1`, []interface{}{venueId}, after, limit)
}

// UserBookings pages one user's bookings, newest first.
func (s *Storage) UserBookings(userId domain.UserId, after *time.Time, limit int) ([]domain.Booking, error) {
	return s.bookingPage(`b.user_id = $1`, []interface{}{userId}, after, limit)
}

func (s *Storage) bookingPage(where string, args []interface{}, after *time.Time, limit int) ([]domain.Booking, error) {
	if after != nil {
		where = fmt.Sprintf("%s AND b.created < $%d", where, len(args)+1)
		args = append(args, after.UTC())
	}
	query := fmt.Sprintf(`
		SELECT %s
		FROM bookings b
		JOIN venues v ON v.id = b.venue_id
		WHERE %s
		ORDER BY b.created DESC
		LIMIT $%d`,
		bookingColumns, where, len(args)+1)
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.Id, &b.VenueId, &b.VenueName, &b.UserId, &b.UserName,
			&b.UserEmail, &b.Date, &b.Time, &b.Guests, &b.Notes, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}
	return bookings, nil
}

// CancelBooking deletes a booking. The userId guard mirrors the service
// ownership check; admins pass an empty userId to bypass it.
func (s *Storage) CancelBooking(id domain.BookingId, userId domain.UserId) error {
	query := `DELETE FROM bookings WHERE id = $1`
	args := []interface{}{id}
	if userId != "" {
		query += ` AND user_id = $2`
		args = append(args, userId)
	}
	result, err := s.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	return requireAffected(result, "Booking not found")
}
