package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/lib/pq"

	"github.com/nitespot-dev/nitespot/shared/domain"
	internal_errors "github.com/nitespot-dev/nitespot/shared/errors"
)

const userColumns = `id, email, username, phone, avatar_url, role, venue_ids, bookmarked_events, pass_hash, created AT TIME ZONE 'utc'`

// SaveUser inserts a new account and returns its assigned id.
// A duplicate email maps to 409 so the service layer can pass it through.
func (s *Storage) SaveUser(creds domain.Credentials, passHash string) (domain.UserId, error) {
	var id domain.UserId
	err := s.db.QueryRow(`
		INSERT INTO users(email, username, pass_hash)
		VALUES($1, $2, $3)
		RETURNING id`,
		creds.Email, creds.Username, passHash,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return "", &internal_errors.ErrorWithStatusCode{Message: "User already exists", StatusCode: http.StatusConflict}
		}
		return "", fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

func (s *Storage) User(email domain.Email) (domain.User, error) {
	return s.scanUser(s.db.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (s *Storage) UserById(id domain.UserId) (domain.User, error) {
	return s.scanUser(s.db.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (s *Storage) scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.Id, &u.Email, &u.Username, &u.Phone, &u.AvatarURL,
		&u.Role, &u.VenueIds, &u.BookmarkedEvents, &u.PassHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return u, nil
}

func (s *Storage) Users() ([]domain.User, error) {
	rows, err := s.db.Query(`SELECT ` + userColumns + ` FROM users ORDER BY created DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.Id, &u.Email, &u.Username, &u.Phone, &u.AvatarURL,
			&u.Role, &u.VenueIds, &u.BookmarkedEvents, &u.PassHash, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

// UpdateProfile changes the caller-editable fields only.
func (s *Storage) UpdateProfile(id domain.UserId, username, phone string) error {
	return s.execOnUser(`UPDATE users SET username = $2, phone = $3 WHERE id = $1`, id, username, phone)
}

func (s *Storage) UpdateAvatar(id domain.UserId, avatarURL string) error {
	return s.execOnUser(`UPDATE users SET avatar_url = $2 WHERE id = $1`, id, avatarURL)
}

func (s *Storage) SetRole(id domain.UserId, role domain.Role) error {
	return s.execOnUser(`UPDATE users SET role = $2 WHERE id = $1`, id, role)
}

// AssignVenue adds a venue to the user's owned set and promotes the user
// to owner if currently a plain user. Idempotent.
func (s *Storage) AssignVenue(userId domain.UserId, venueId domain.VenueId) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		var exists bool
		if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM venues WHERE id = $1)`, venueId).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check venue existence: %w", err)
		}
		if !exists {
			return &internal_errors.ErrorWithStatusCode{Message: "Venue not found", StatusCode: http.StatusNotFound}
		}
		result, err := tx.Exec(`
			UPDATE users SET
				venue_ids = array_append(array_remove(venue_ids, $2), $2),
				role = CASE WHEN role = $3 THEN $4 ELSE role END
			WHERE id = $1`,
			userId, venueId, domain.RoleUser, domain.RoleOwner)
		if err != nil {
			return fmt.Errorf("failed to assign venue: %w", err)
		}
		return requireAffected(result, "User not found")
	})
}

func (s *Storage) UnassignVenue(userId domain.UserId, venueId domain.VenueId) error {
	return s.execOnUser(`UPDATE users SET venue_ids = array_remove(venue_ids, $2) WHERE id = $1`, userId, venueId)
}

func (s *Storage) AddBookmark(userId domain.UserId, eventId domain.EventId) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		var exists bool
		if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM events WHERE id = $1)`, eventId).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check event existence: %w", err)
		}
		if !exists {
			return &internal_errors.ErrorWithStatusCode{Message: "Event not found", StatusCode: http.StatusNotFound}
		}
		result, err := tx.Exec(`
			UPDATE users SET bookmarked_events = array_append(array_remove(bookmarked_events, $2), $2)
			WHERE id = $1`,
			userId, eventId)
		if err != nil {
			return fmt.Errorf("failed to add bookmark: %w", err)
		}
		return requireAffected(result, "User not found")
	})
}

func (s *Storage) RemoveBookmark(userId domain.UserId, eventId domain.EventId) error {
	return s.execOnUser(`UPDATE users SET bookmarked_events = array_remove(bookmarked_events, $2) WHERE id = $1`, userId, eventId)
}

func (s *Storage) DeleteUser(id domain.UserId) error {
	return s.execOnUser(`DELETE FROM users WHERE id = $1`, id)
}

func (s *Storage) execOnUser(query string, args ...interface{}) error {
	result, err := s.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return requireAffected(result, "User not found")
}

// requireAffected turns a zero-row write into a 404.
func requireAffected(result sql.Result, notFoundMsg string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: notFoundMsg, StatusCode: http.StatusNotFound}
	}
	return nil
}
