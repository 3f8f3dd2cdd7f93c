package api

import "github.com/nitespot-dev/nitespot/shared/domain"

// Request DTOs

type EventRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Date        string `json:"date"`
	VenueId     string `json:"venue_id"`
	ImageURL    string `json:"image_url"`
}

func (r EventRequest) CreationData() domain.EventCreationData {
	return domain.EventCreationData{
		Name:        r.Name,
		Description: r.Description,
		Date:        r.Date,
		VenueId:     r.VenueId,
		ImageURL:    r.ImageURL,
	}
}

// Response DTOs

type EventResponse struct {
	domain.Event
}

type EventListResponse struct {
	Events []domain.Event `json:"events"`
}

type EventCreatedResponse struct {
	Id string `json:"id"`
}
