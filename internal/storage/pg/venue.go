package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/nitespot-dev/nitespot/shared/domain"
	internal_errors "github.com/nitespot-dev/nitespot/shared/errors"
)

const venueColumns = `id, name, location, description, opening_hours, rating, is_premium, image_url, amenities, created AT TIME ZONE 'utc'`

func (s *Storage) CreateVenue(data domain.VenueCreationData) (domain.VenueId, error) {
	var id domain.VenueId
	err := s.db.QueryRow(`
		INSERT INTO venues(name, location, description, opening_hours, rating, is_premium, image_url, amenities)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		data.Name, data.Location, data.Description, data.OpeningHours,
		data.Rating, data.IsPremium, data.ImageURL, data.Amenities,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to insert venue: %w", err)
	}
	return id, nil
}

func (s *Storage) Venue(id domain.VenueId) (domain.Venue, error) {
	var v domain.Venue
	err := s.db.QueryRow(`SELECT `+venueColumns+` FROM venues WHERE id = $1`, id).Scan(
		&v.Id, &v.Name, &v.Location, &v.Description, &v.OpeningHours,
		&v.Rating, &v.IsPremium, &v.ImageURL, &v.Amenities, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Venue{}, &internal_errors.ErrorWithStatusCode{Message: "Venue not found", StatusCode: http.StatusNotFound}
		}
		return domain.Venue{}, fmt.Errorf("failed to query venue: %w", err)
	}
	return v, nil
}

// Venues returns every venue. The list is small enough to rank and split
// in memory; live open/closed status is the service layer's job.
func (s *Storage) Venues() ([]domain.Venue, error) {
	rows, err := s.db.Query(`SELECT ` + venueColumns + ` FROM venues ORDER BY rating DESC, created DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query venues: %w", err)
	}
	defer rows.Close()

	var venues []domain.Venue
	for rows.Next() {
		var v domain.Venue
		if err := rows.Scan(&v.Id, &v.Name, &v.Location, &v.Description, &v.OpeningHours,
			&v.Rating, &v.IsPremium, &v.ImageURL, &v.Amenities, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan venue: %w", err)
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating venues: %w", err)
	}
	return venues, nil
}

func (s *Storage) UpdateVenue(id domain.VenueId, data domain.VenueCreationData) error {
	result, err := s.db.Exec(`
		UPDATE venues SET
			name = $2,
			location = $3,
			description = $4,
			opening_hours = $5,
			rating = $6,
			is_premium = $7,
			image_url = $8,
			amenities = $9
		WHERE id = $1`,
		id, data.Name, data.Location, data.Description, data.OpeningHours,
		data.Rating, data.IsPremium, data.ImageURL, data.Amenities)
	if err != nil {
		return fmt.Errorf("failed to update venue: %w", err)
	}
	return requireAffected(result, "Venue not found")
}

// DeleteVenue removes the venue; bookings cascade, comments for the venue
// feed are removed explicitly since the polymorphic parent has no FK.
func (s *Storage) DeleteVenue(id domain.VenueId) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.Exec(`DELETE FROM venues WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete venue: %w", err)
		}
		if err := requireAffected(result, "Venue not found"); err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM comments WHERE parent_kind = $1 AND parent_id = $2`, domain.ParentVenue, id); err != nil {
			return fmt.Errorf("failed to delete venue comments: %w", err)
		}
		if _, err := tx.Exec(`UPDATE users SET venue_ids = array_remove(venue_ids, $1)`, id); err != nil {
			return fmt.Errorf("failed to unassign deleted venue: %w", err)
		}
		return nil
	})
}
