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

const eventColumns = `id, name, description, date, COALESCE(venue_id::text, ''), image_url, created_by, created AT TIME ZONE 'utc'`

func (s *Storage) CreateEvent(data domain.EventCreationData) (domain.EventId, error) {
	// venue_id is nullable; an event does not have to belong to a venue.
	var venueId interface{}
	if data.VenueId != "" {
		venueId = data.VenueId
	}

	var id domain.EventId
	err := s.db.QueryRow(`
		INSERT INTO events(name, description, date, venue_id, image_url, created_by)
		VALUES($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		data.Name, data.Description, data.Date, venueId, data.ImageURL, data.CreatedBy,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to insert event: %w", err)
	}
	return id, nil
}

func (s *Storage) Event(id domain.EventId) (domain.Event, error) {
	var e domain.Event
	err := s.db.QueryRow(`SELECT `+eventColumns+` FROM events WHERE id = $1`, id).Scan(
		&e.Id, &e.Name, &e.Description, &e.Date, &e.VenueId, &e.ImageURL, &e.CreatedBy, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Event{}, &internal_errors.ErrorWithStatusCode{Message: "Event not found", StatusCode: http.StatusNotFound}
		}
		return domain.Event{}, fmt.Errorf("failed to query event: %w", err)
	}
	return e, nil
}

// Events returns all events ordered by their scheduled date, soonest first.
// Dates are YYYY-MM-DD strings so lexicographic order is chronological.
func (s *Storage) Events() ([]domain.Event, error) {
	rows, err := s.db.Query(`SELECT ` + eventColumns + ` FROM events ORDER BY date ASC, created DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.Id, &e.Name, &e.Description, &e.Date, &e.VenueId,
			&e.ImageURL, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}
	return events, nil
}

// EventsByIds fetches the given events, preserving lookup by id for the
// bookmarks listing. Missing ids are silently skipped.
func (s *Storage) EventsByIds(ids []domain.EventId) ([]domain.Event, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := s.db.Query(`
		SELECT `+eventColumns+`
		FROM events
		WHERE id = ANY($1::uuid[])
		ORDER BY date ASC, created DESC`,
		domain.Ids(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to query events by ids: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.Id, &e.Name, &e.Description, &e.Date, &e.VenueId,
			&e.ImageURL, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}
	return events, nil
}

func (s *Storage) UpdateEvent(id domain.EventId, data domain.EventCreationData) error {
	var venueId interface{}
	if data.VenueId != "" {
		venueId = data.VenueId
	}
	result, err := s.db.Exec(`
		UPDATE events SET
			name = $2,
			description = $3,
			date = $4,
			venue_id = $5,
			image_url = $6
		WHERE id = $1`,
		id, data.Name, data.Description, data.Date, venueId, data.ImageURL)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return requireAffected(result, "Event not found")
}

// DeleteEvent removes the event, its comment feed and any bookmarks
// pointing at it.
func (s *Storage) DeleteEvent(id domain.EventId) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.Exec(`DELETE FROM events WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete event: %w", err)
		}
		if err := requireAffected(result, "Event not found"); err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM comments WHERE parent_kind = $1 AND parent_id = $2`, domain.ParentEvent, id); err != nil {
			return fmt.Errorf("failed to delete event comments: %w", err)
		}
		if _, err := tx.Exec(`UPDATE users SET bookmarked_events = array_remove(bookmarked_events, $1)`, id); err != nil {
			return fmt.Errorf("failed to remove event bookmarks: %w", err)
		}
		return nil
	})
}
