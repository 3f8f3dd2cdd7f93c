package service

import (
	"io"
	"time"

	"github.com/nitespot-dev/nitespot/shared/domain"
)

// mockUserStorage mocks UserStorage / CommentUserStorage / AvatarStorage.
type mockUserStorage struct {
	userByIdFunc       func(id domain.UserId) (domain.User, error)
	usersFunc          func() ([]domain.User, error)
	updateProfileFunc  func(id domain.UserId, username, phone string) error
	updateAvatarFunc   func(id domain.UserId, avatarURL string) error
	setRoleFunc        func(id domain.UserId, role domain.Role) error
	assignVenueFunc    func(userId domain.UserId, venueId domain.VenueId) error
	unassignVenueFunc  func(userId domain.UserId, venueId domain.VenueId) error
	addBookmarkFunc    func(userId domain.UserId, eventId domain.EventId) error
	removeBookmarkFunc func(userId domain.UserId, eventId domain.EventId) error
}

func (m *mockUserStorage) UserById(id domain.UserId) (domain.User, error) {
	if m.userByIdFunc != nil {
		return m.userByIdFunc(id)
	}
	return domain.User{Id: id, Username: "tester", Email: "tester@example.com"}, nil
}

func (m *mockUserStorage) Users() ([]domain.User, error) {
	if m.usersFunc != nil {
		return m.usersFunc()
	}
	return nil, nil
}

func (m *mockUserStorage) UpdateProfile(id domain.UserId, username, phone string) error {
	if m.updateProfileFunc != nil {
		return m.updateProfileFunc(id, username, phone)
	}
	return nil
}

func (m *mockUserStorage) UpdateAvatar(id domain.UserId, avatarURL string) error {
	if m.updateAvatarFunc != nil {
		return m.updateAvatarFunc(id, avatarURL)
	}
	return nil
}

func (m *mockUserStorage) SetRole(id domain.UserId, role domain.Role) error {
	if m.setRoleFunc != nil {
		return m.setRoleFunc(id, role)
	}
	return nil
}

func (m *mockUserStorage) AssignVenue(userId domain.UserId, venueId domain.VenueId) error {
	if m.assignVenueFunc != nil {
		return m.assignVenueFunc(userId, venueId)
	}
	return nil
}

func (m *mockUserStorage) UnassignVenue(userId domain.UserId, venueId domain.VenueId) error {
	if m.unassignVenueFunc != nil {
		return m.unassignVenueFunc(userId, venueId)
	}
	return nil
}

func (m *mockUserStorage) AddBookmark(userId domain.UserId, eventId domain.EventId) error {
	if m.addBookmarkFunc != nil {
		return m.addBookmarkFunc(userId, eventId)
	}
	return nil
}

func (m *mockUserStorage) RemoveBookmark(userId domain.UserId, eventId domain.EventId) error {
	if m.removeBookmarkFunc != nil {
		return m.removeBookmarkFunc(userId, eventId)
	}
	return nil
}

// mockBookingStorage mocks BookingStorage.
type mockBookingStorage struct {
	createBookingFunc func(data domain.BookingCreationData) (domain.Booking, error)
	bookingsFunc      func(after *time.Time, limit int) ([]domain.Booking, error)
	venueBookingsFunc func(venueId domain.VenueId, after *time.Time, limit int) ([]domain.Booking, error)
	userBookingsFunc  func(userId domain.UserId, after *time.Time, limit int) ([]domain.Booking, error)
	cancelBookingFunc func(id domain.BookingId, userId domain.UserId) error
}

func (m *mockBookingStorage) CreateBooking(data domain.BookingCreationData) (domain.Booking, error) {
	if m.createBookingFunc != nil {
		return m.createBookingFunc(data)
	}
	return domain.Booking{}, nil
}

func (m *mockBookingStorage) Bookings(after *time.Time, limit int) ([]domain.Booking, error) {
	if m.bookingsFunc != nil {
		return m.bookingsFunc(after, limit)
	}
	return nil, nil
}

func (m *mockBookingStorage) VenueBookings(venueId domain.VenueId, after *time.Time, limit int) ([]domain.Booking, error) {
	if m.venueBookingsFunc != nil {
		return m.venueBookingsFunc(venueId, after, limit)
	}
	return nil, nil
}

func (m *mockBookingStorage) UserBookings(userId domain.UserId, after *time.Time, limit int) ([]domain.Booking, error) {
	if m.userBookingsFunc != nil {
		return m.userBookingsFunc(userId, after, limit)
	}
	return nil, nil
}

func (m *mockBookingStorage) CancelBooking(id domain.BookingId, userId domain.UserId) error {
	if m.cancelBookingFunc != nil {
		return m.cancelBookingFunc(id, userId)
	}
	return nil
}

// mockCommentStorage mocks CommentStorage.
type mockCommentStorage struct {
	createCommentFunc func(data domain.CommentCreationData) (domain.Comment, error)
	commentFunc       func(id domain.CommentId) (domain.Comment, error)
	commentsFunc      func(parent domain.FeedParent, after *time.Time, limit int) ([]domain.Comment, error)
	updateCommentFunc func(id domain.CommentId, authorId domain.UserId, content string) error
	deleteCommentFunc func(id domain.CommentId, authorId domain.UserId) error
}

func (m *mockCommentStorage) CreateComment(data domain.CommentCreationData) (domain.Comment, error) {
	if m.createCommentFunc != nil {
		return m.createCommentFunc(data)
	}
	return domain.Comment{Parent: data.Parent, Author: data.Author, Content: data.Content}, nil
}

func (m *mockCommentStorage) Comment(id domain.CommentId) (domain.Comment, error) {
	if m.commentFunc != nil {
		return m.commentFunc(id)
	}
	return domain.Comment{Id: id}, nil
}

func (m *mockCommentStorage) Comments(parent domain.FeedParent, after *time.Time, limit int) ([]domain.Comment, error) {
	if m.commentsFunc != nil {
		return m.commentsFunc(parent, after, limit)
	}
	return nil, nil
}

func (m *mockCommentStorage) UpdateComment(id domain.CommentId, authorId domain.UserId, content string) error {
	if m.updateCommentFunc != nil {
		return m.updateCommentFunc(id, authorId, content)
	}
	return nil
}

func (m *mockCommentStorage) DeleteComment(id domain.CommentId, authorId domain.UserId) error {
	if m.deleteCommentFunc != nil {
		return m.deleteCommentFunc(id, authorId)
	}
	return nil
}

// mockEventStorage mocks EventStorage / BookmarkEventStorage.
type mockEventStorage struct {
	createEventFunc func(data domain.EventCreationData) (domain.EventId, error)
	eventFunc       func(id domain.EventId) (domain.Event, error)
	eventsFunc      func() ([]domain.Event, error)
	eventsByIdsFunc func(ids []domain.EventId) ([]domain.Event, error)
	updateEventFunc func(id domain.EventId, data domain.EventCreationData) error
	deleteEventFunc func(id domain.EventId) error
}

func (m *mockEventStorage) CreateEvent(data domain.EventCreationData) (domain.EventId, error) {
	if m.createEventFunc != nil {
		return m.createEventFunc(data)
	}
	return "event-1", nil
}

func (m *mockEventStorage) Event(id domain.EventId) (domain.Event, error) {
	if m.eventFunc != nil {
		return m.eventFunc(id)
	}
	return domain.Event{Id: id}, nil
}

func (m *mockEventStorage) Events() ([]domain.Event, error) {
	if m.eventsFunc != nil {
		return m.eventsFunc()
	}
	return nil, nil
}

func (m *mockEventStorage) EventsByIds(ids []domain.EventId) ([]domain.Event, error) {
	if m.eventsByIdsFunc != nil {
		return m.eventsByIdsFunc(ids)
	}
	return nil, nil
}

func (m *mockEventStorage) UpdateEvent(id domain.EventId, data domain.EventCreationData) error {
	if m.updateEventFunc != nil {
		return m.updateEventFunc(id, data)
	}
	return nil
}

func (m *mockEventStorage) DeleteEvent(id domain.EventId) error {
	if m.deleteEventFunc != nil {
		return m.deleteEventFunc(id)
	}
	return nil
}

// mockMediaStorage mocks MediaStorage with an in-memory map.
type mockMediaStorage struct {
	saved    map[string][]byte
	saveErr  error
	deleted  []string
	readFunc func(filePath string) (io.ReadCloser, error)
}

func newMockMediaStorage() *mockMediaStorage {
	return &mockMediaStorage{saved: map[string][]byte{}}
}

func (m *mockMediaStorage) Save(fileData io.Reader, category, name, extension string) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	data, err := io.ReadAll(fileData)
	if err != nil {
		return "", err
	}
	rel := category + "/" + name + extension
	m.saved[rel] = data
	return rel, nil
}

func (m *mockMediaStorage) Read(filePath string) (io.ReadCloser, error) {
	if m.readFunc != nil {
		return m.readFunc(filePath)
	}
	return nil, io.ErrUnexpectedEOF
}

func (m *mockMediaStorage) Delete(filePath string) error {
	m.deleted = append(m.deleted, filePath)
	delete(m.saved, filePath)
	return nil
}
