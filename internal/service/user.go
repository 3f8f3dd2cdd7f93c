package service

import (
	"github.com/nitespot-dev/nitespot/shared/domain"
	internal_errors "github.com/nitespot-dev/nitespot/shared/errors"
)

type UserService interface {
	Me(viewer *domain.Viewer) (domain.User, error)
	UpdateProfile(viewer *domain.Viewer, username, phone string) error
	Bookmarks(viewer *domain.Viewer) ([]domain.Event, error)
	AddBookmark(viewer *domain.Viewer, eventId domain.EventId) error
	RemoveBookmark(viewer *domain.Viewer, eventId domain.EventId) error

	// admin operations
	Users() ([]domain.User, error)
	SetRole(id domain.UserId, role domain.Role) error
	AssignVenue(userId domain.UserId, venueId domain.VenueId) error
	UnassignVenue(userId domain.UserId, venueId domain.VenueId) error
}

type User struct {
	storage UserStorage
	events  BookmarkEventStorage
}

type UserStorage interface {
	UserById(id domain.UserId) (domain.User, error)
	Users() ([]domain.User, error)
	UpdateProfile(id domain.UserId, username, phone string) error
	SetRole(id domain.UserId, role domain.Role) error
	AssignVenue(userId domain.UserId, venueId domain.VenueId) error
	UnassignVenue(userId domain.UserId, venueId domain.VenueId) error
	AddBookmark(userId domain.UserId, eventId domain.EventId) error
	RemoveBookmark(userId domain.UserId, eventId domain.EventId) error
}

type BookmarkEventStorage interface {
	EventsByIds(ids []domain.EventId) ([]domain.Event, error)
}

func NewUser(storage UserStorage, events BookmarkEventStorage) *User {
	return &User{storage: storage, events: events}
}

func (u *User) Me(viewer *domain.Viewer) (domain.User, error) {
	return u.storage.UserById(viewer.Id)
}

func (u *User) UpdateProfile(viewer *domain.Viewer, username, phone string) error {
	if username == "" {
		return internal_errors.BadRequest("Username cannot be empty")
	}
	return u.storage.UpdateProfile(viewer.Id, username, phone)
}

// Bookmarks resolves the viewer's bookmarked event ids to full events.
// Ids pointing at deleted events are dropped silently.
func (u *User) Bookmarks(viewer *domain.Viewer) ([]domain.Event, error) {
	user, err := u.storage.UserById(viewer.Id)
	if err != nil {
		return nil, err
	}
	return u.events.EventsByIds(user.BookmarkedEvents)
}

func (u *User) AddBookmark(viewer *domain.Viewer, eventId domain.EventId) error {
	return u.storage.AddBookmark(viewer.Id, eventId)
}

func (u *User) RemoveBookmark(viewer *domain.Viewer, eventId domain.EventId) error {
	return u.storage.RemoveBookmark(viewer.Id, eventId)
}

func (u *User) Users() ([]domain.User, error) {
	return u.storage.Users()
}

func (u *User) SetRole(id domain.UserId, role domain.Role) error {
	switch role {
	case domain.RoleUser, domain.RoleOwner, domain.RoleAdmin:
	default:
		return internal_errors.BadRequest("Unknown role")
	}
	return u.storage.SetRole(id, role)
}

func (u *User) AssignVenue(userId domain.UserId, venueId domain.VenueId) error {
	return u.storage.AssignVenue(userId, venueId)
}

func (u *User) UnassignVenue(userId domain.UserId, venueId domain.VenueId) error {
	return u.storage.UnassignVenue(userId, venueId)
}
