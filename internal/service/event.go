package service

import (
	"net/http"

	"github.com/nitespot-dev/nitespot/shared/domain"
	internal_errors "github.com/nitespot-dev/nitespot/shared/errors"
)

type EventService interface {
	List() ([]domain.Event, error)
	Get(id domain.EventId) (domain.Event, error)
	Create(viewer *domain.Viewer, data domain.EventCreationData) (domain.EventId, error)
	Update(viewer *domain.Viewer, id domain.EventId, data domain.EventCreationData) error
	Delete(viewer *domain.Viewer, id domain.EventId) error
}

type Event struct {
	storage EventStorage
	users   CommentUserStorage
}

type EventStorage interface {
	CreateEvent(data domain.EventCreationData) (domain.EventId, error)
	Event(id domain.EventId) (domain.Event, error)
	Events() ([]domain.Event, error)
	UpdateEvent(id domain.EventId, data domain.EventCreationData) error
	DeleteEvent(id domain.EventId) error
}

func NewEvent(storage EventStorage, users CommentUserStorage) *Event {
	return &Event{storage: storage, users: users}
}

func (e *Event) List() ([]domain.Event, error) {
	return e.storage.Events()
}

func (e *Event) Get(id domain.EventId) (domain.Event, error) {
	return e.storage.Event(id)
}

// Create lets owners and admins publish events. An owner publishing for
// a venue must own that venue; venue-less events only need owner role.
func (e *Event) Create(viewer *domain.Viewer, data domain.EventCreationData) (domain.EventId, error) {
	if err := e.authorizePublish(viewer, data.VenueId); err != nil {
		return "", err
	}
	if data.Name == "" {
		return "", internal_errors.BadRequest("Event name is required")
	}
	data.CreatedBy = viewer.Email
	return e.storage.CreateEvent(data)
}

func (e *Event) Update(viewer *domain.Viewer, id domain.EventId, data domain.EventCreationData) error {
	event, err := e.storage.Event(id)
	if err != nil {
		return err
	}
	if err := e.authorizeModify(viewer, event); err != nil {
		return err
	}
	if err := e.authorizePublish(viewer, data.VenueId); err != nil {
		return err
	}
	return e.storage.UpdateEvent(id, data)
}

func (e *Event) Delete(viewer *domain.Viewer, id domain.EventId) error {
	event, err := e.storage.Event(id)
	if err != nil {
		return err
	}
	if err := e.authorizeModify(viewer, event); err != nil {
		return err
	}
	return e.storage.DeleteEvent(id)
}

// authorizeModify: the creator, the owner of the event's venue, or an admin.
func (e *Event) authorizeModify(viewer *domain.Viewer, event domain.Event) error {
	if viewer.Admin() || event.CreatedBy == viewer.Email {
		return nil
	}
	if event.VenueId != "" {
		user, err := e.users.UserById(viewer.Id)
		if err != nil {
			return err
		}
		if user.OwnsVenue(event.VenueId) {
			return nil
		}
	}
	return &internal_errors.ErrorWithStatusCode{Message: "You cannot modify this event", StatusCode: http.StatusForbidden}
}

func (e *Event) authorizePublish(viewer *domain.Viewer, venueId domain.VenueId) error {
	if viewer.Admin() {
		return nil
	}
	if viewer.Role != domain.RoleOwner {
		return &internal_errors.ErrorWithStatusCode{Message: "Only venue owners can publish events", StatusCode: http.StatusForbidden}
	}
	if venueId == "" {
		return nil
	}
	user, err := e.users.UserById(viewer.Id)
	if err != nil {
		return err
	}
	if !user.OwnsVenue(venueId) {
		return &internal_errors.ErrorWithStatusCode{Message: "You do not manage this venue", StatusCode: http.StatusForbidden}
	}
	return nil
}
