package api

import "github.com/nitespot-dev/nitespot/shared/domain"

// Request DTOs

type VenueRequest struct {
	Name         string   `json:"name" validate:"required"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	OpeningHours string   `json:"opening_hours"`
	Rating       float64  `json:"rating"`
	IsPremium    bool     `json:"is_premium"`
	ImageURL     string   `json:"image_url"`
	Amenities    []string `json:"amenities"`
}

func (r VenueRequest) CreationData() domain.VenueCreationData {
	return domain.VenueCreationData{
		Name:         r.Name,
		Location:     r.Location,
		Description:  r.Description,
		OpeningHours: r.OpeningHours,
		Rating:       r.Rating,
		IsPremium:    r.IsPremium,
		ImageURL:     r.ImageURL,
		Amenities:    domain.Amenities(r.Amenities),
	}
}

// Response DTOs

type VenueResponse struct {
	domain.VenueWithStatus
}

type VenueListResponse struct {
	Premium []domain.VenueWithStatus `json:"premium"`
	Regular []domain.VenueWithStatus `json:"regular"`
}

type VenueCreatedResponse struct {
	Id string `json:"id"`
}
