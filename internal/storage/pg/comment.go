package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/nitespot-dev/nitespot/shared/domain"
	internal_errors "github.com/nitespot-dev/nitespot/shared/errors"
)

const commentColumns = `id, parent_kind, parent_id, author_id, author_name, avatar_url, content, created AT TIME ZONE 'utc', edited AT TIME ZONE 'utc'`

// CreateComment inserts a comment with a store-assigned creation timestamp
// (the feed ordering key) and returns the full stored row.
func (s *Storage) CreateComment(data domain.CommentCreationData) (domain.Comment, error) {
	created := time.Now().UTC().Round(time.Microsecond)

	c := domain.Comment{
		Parent:    data.Parent,
		Author:    data.Author,
		Content:   data.Content,
		CreatedAt: created,
	}
	err := s.db.QueryRow(`
		INSERT INTO comments(parent_kind, parent_id, author_id, author_name, avatar_url, content, created)
		VALUES($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		data.Parent.Kind, data.Parent.Id, data.Author.Id, data.Author.Name,
		data.Author.AvatarURL, data.Content, created,
	).Scan(&c.Id)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("failed to insert comment: %w", err)
	}
	return c, nil
}

func (s *Storage) Comment(id domain.CommentId) (domain.Comment, error) {
	c, err := scanComment(s.db.QueryRow(`SELECT `+commentColumns+` FROM comments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Comment{}, &internal_errors.ErrorWithStatusCode{Message: "Comment not found", StatusCode: http.StatusNotFound}
		}
		return domain.Comment{}, fmt.Errorf("failed to query comment: %w", err)
	}
	return c, nil
}

// Comments returns one feed page: newest first, strictly older than the
// cursor when one is given. A page shorter than limit means the feed is
// exhausted.
func (s *Storage) Comments(parent domain.FeedParent, after *time.Time, limit int) ([]domain.Comment, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if after != nil {
		rows, err = s.db.Query(`
			SELECT `+commentColumns+`
			FROM comments
			WHERE parent_kind = $1 AND parent_id = $2 AND created < $3
			ORDER BY created DESC
			LIMIT $4`,
			parent.Kind, parent.Id, after.UTC(), limit)
	} else {
		rows, err = s.db.Query(`
			SELECT `+commentColumns+`
			FROM comments
			WHERE parent_kind = $1 AND parent_id = $2
			ORDER BY created DESC
			LIMIT $3`,
			parent.Kind, parent.Id, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}
	return comments, nil
}

// UpdateComment replaces the content and stamps edited. The authorId guard
// mirrors the service-level ownership check; admins pass an empty authorId
// to bypass it.
func (s *Storage) UpdateComment(id domain.CommentId, authorId domain.UserId, content string) error {
	edited := time.Now().UTC().Round(time.Microsecond)

	query := `UPDATE comments SET content = $2, edited = $3 WHERE id = $1`
	args := []interface{}{id, content, edited}
	if authorId != "" {
		query += ` AND author_id = $4`
		args = append(args, authorId)
	}
	result, err := s.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	return requireAffected(result, "Comment not found")
}

func (s *Storage) DeleteComment(id domain.CommentId, authorId domain.UserId) error {
	query := `DELETE FROM comments WHERE id = $1`
	args := []interface{}{id}
	if authorId != "" {
		query += ` AND author_id = $2`
		args = append(args, authorId)
	}
	result, err := s.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return requireAffected(result, "Comment not found")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanComment(row rowScanner) (domain.Comment, error) {
	var (
		c      domain.Comment
		edited sql.NullTime
	)
	err := row.Scan(&c.Id, &c.Parent.Kind, &c.Parent.Id, &c.Author.Id, &c.Author.Name,
		&c.Author.AvatarURL, &c.Content, &c.CreatedAt, &edited)
	if err != nil {
		return domain.Comment{}, err
	}
	if edited.Valid {
		t := edited.Time
		c.EditedAt = &t
	}
	return c, nil
}
