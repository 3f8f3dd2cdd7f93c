package service

import (
	"context"
	"regexp"
	"time"

	"github.com/nitespot-dev/nitespot/shared/domain"
	internal_errors "github.com/nitespot-dev/nitespot/shared/errors"
	"github.com/nitespot-dev/nitespot/shared/feed"
)

type BookingService interface {
	Create(viewer *domain.Viewer, data domain.BookingCreationData) (domain.Booking, error)
	Recent(ctx context.Context, viewer *domain.Viewer) ([]domain.Booking, error)
	VenueFeed(venueId domain.VenueId, after *int64, limit int) (Page[domain.Booking], error)
	All(ctx context.Context) ([]domain.Booking, error)
	Cancel(viewer *domain.Viewer, id domain.BookingId) error
}

type Booking struct {
	storage       BookingStorage
	users         CommentUserStorage
	recentLimit   int
	drainPageSize int
}

type BookingStorage interface {
	CreateBooking(data domain.BookingCreationData) (domain.Booking, error)
	Bookings(after *time.Time, limit int) ([]domain.Booking, error)
	VenueBookings(venueId domain.VenueId, after *time.Time, limit int) ([]domain.Booking, error)
	UserBookings(userId domain.UserId, after *time.Time, limit int) ([]domain.Booking, error)
	CancelBooking(id domain.BookingId, userId domain.UserId) error
}

func NewBooking(storage BookingStorage, users CommentUserStorage, recentLimit, drainPageSize int) *Booking {
	return &Booking{storage: storage, users: users, recentLimit: recentLimit, drainPageSize: drainPageSize}
}

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// Create books a slot for the viewer. The user snapshot (name, email)
// is denormalized onto the booking at write time.
func (b *Booking) Create(viewer *domain.Viewer, data domain.BookingCreationData) (domain.Booking, error) {
	if !dateRe.MatchString(data.Date) {
		return domain.Booking{}, internal_errors.BadRequest("Date must be YYYY-MM-DD")
	}
	if !timeRe.MatchString(data.Time) {
		return domain.Booking{}, internal_errors.BadRequest("Time must be HH:MM")
	}
	if data.Guests < 1 {
		return domain.Booking{}, internal_errors.BadRequest("At least one guest required")
	}

	user, err := b.users.UserById(viewer.Id)
	if err != nil {
		return domain.Booking{}, err
	}
	data.UserId = user.Id
	data.UserName = user.Username
	data.UserEmail = user.Email

	return b.storage.CreateBooking(data)
}

// userBookingSource binds the shared booking table to one user's feed.
type userBookingSource struct {
	storage BookingStorage
	userId  domain.UserId
}

func (s userBookingSource) FetchPage(_ context.Context, after *feed.Cursor, limit int) ([]domain.Booking, error) {
	return s.storage.UserBookings(s.userId, cursorTime(after), limit)
}

// allBookingSource feeds every booking, newest first (admin view).
type allBookingSource struct {
	storage BookingStorage
}

func (s allBookingSource) FetchPage(_ context.Context, after *feed.Cursor, limit int) ([]domain.Booking, error) {
	return s.storage.Bookings(cursorTime(after), limit)
}

func cursorTime(after *feed.Cursor) *time.Time {
	if after == nil {
		return nil
	}
	t := time.UnixMicro(*after).UTC()
	return &t
}

// Recent returns the viewer's newest bookings (the profile widget).
func (b *Booking) Recent(ctx context.Context, viewer *domain.Viewer) ([]domain.Booking, error) {
	ctrl := feed.New[domain.Booking](userBookingSource{b.storage, viewer.Id}, nil, domain.BookingKey, b.recentLimit)
	if err := ctrl.LoadFirstPage(ctx); err != nil {
		return nil, err
	}
	return ctrl.Items(), nil
}

// VenueFeed pages one venue's bookings for its owner dashboard.
func (b *Booking) VenueFeed(venueId domain.VenueId, after *int64, limit int) (Page[domain.Booking], error) {
	if limit <= 0 || limit > 100 {
		limit = b.drainPageSize
	}
	bookings, err := b.storage.VenueBookings(venueId, cursorTime(after), limit)
	if err != nil {
		return Page[domain.Booking]{}, err
	}
	page := Page[domain.Booking]{Items: bookings, HasMore: len(bookings) == limit}
	if len(bookings) > 0 {
		k := domain.BookingKey(bookings[len(bookings)-1])
		page.NextCursor = &k
	}
	return page, nil
}

// All drains every booking page for the admin list.
func (b *Booking) All(ctx context.Context) ([]domain.Booking, error) {
	ctrl := feed.New[domain.Booking](allBookingSource{b.storage}, nil, domain.BookingKey, b.drainPageSize)
	return ctrl.Drain(ctx)
}

// Cancel deletes a booking; non-admins can only cancel their own.
func (b *Booking) Cancel(viewer *domain.Viewer, id domain.BookingId) error {
	if viewer.Admin() {
		return b.storage.CancelBooking(id, "")
	}
	return b.storage.CancelBooking(id, viewer.Id)
}
