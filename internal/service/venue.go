package service

import (
	"sort"
	"strings"
	"time"

	"github.com/nitespot-dev/nitespot/shared/domain"
	internal_errors "github.com/nitespot-dev/nitespot/shared/errors"
	"github.com/nitespot-dev/nitespot/shared/hours"
)

type VenueService interface {
	List(query string) (domain.VenueList, error)
	Get(id domain.VenueId) (domain.VenueWithStatus, error)
	Create(data domain.VenueCreationData) (domain.VenueId, error)
	Update(id domain.VenueId, data domain.VenueCreationData) error
	Delete(id domain.VenueId) error
}

type Venue struct {
	storage VenueStorage
	// now is swappable so the open/closed split is testable
	now func() time.Time
}

type VenueStorage interface {
	CreateVenue(data domain.VenueCreationData) (domain.VenueId, error)
	Venue(id domain.VenueId) (domain.Venue, error)
	Venues() ([]domain.Venue, error)
	UpdateVenue(id domain.VenueId, data domain.VenueCreationData) error
	DeleteVenue(id domain.VenueId) error
}

func NewVenue(storage VenueStorage) *Venue {
	return &Venue{storage: storage, now: time.Now}
}

// List returns all venues matching the query, decorated with live
// open/closed status, open venues first, split premium/regular.
func (v *Venue) List(query string) (domain.VenueList, error) {
	venues, err := v.storage.Venues()
	if err != nil {
		return domain.VenueList{}, err
	}

	now := v.now()
	query = strings.ToLower(strings.TrimSpace(query))

	var list domain.VenueList
	for _, venue := range venues {
		if query != "" && !matchesQuery(venue, query) {
			continue
		}
		status := hours.Evaluate(venue.OpeningHours, now)
		decorated := domain.VenueWithStatus{Venue: venue, Open: status.Open, StatusMessage: status.Message}
		if venue.IsPremium {
			list.Premium = append(list.Premium, decorated)
		} else {
			list.Regular = append(list.Regular, decorated)
		}
	}

	sortOpenFirst(list.Premium, now)
	sortOpenFirst(list.Regular, now)
	return list, nil
}

// sortOpenFirst keeps the storage ordering (rating) within each half.
func sortOpenFirst(venues []domain.VenueWithStatus, now time.Time) {
	sort.SliceStable(venues, func(i, j int) bool {
		return hours.IsOpen(venues[i].OpeningHours, now) && !hours.IsOpen(venues[j].OpeningHours, now)
	})
}

func matchesQuery(v domain.Venue, query string) bool {
	return strings.Contains(strings.ToLower(v.Name), query) ||
		strings.Contains(strings.ToLower(v.Location), query) ||
		strings.Contains(strings.ToLower(v.Description), query)
}

func (v *Venue) Get(id domain.VenueId) (domain.VenueWithStatus, error) {
	venue, err := v.storage.Venue(id)
	if err != nil {
		return domain.VenueWithStatus{}, err
	}
	status := hours.Evaluate(venue.OpeningHours, v.now())
	return domain.VenueWithStatus{Venue: venue, Open: status.Open, StatusMessage: status.Message}, nil
}

func (v *Venue) Create(data domain.VenueCreationData) (domain.VenueId, error) {
	if err := validateHours(data.OpeningHours); err != nil {
		return "", err
	}
	return v.storage.CreateVenue(data)
}

func (v *Venue) Update(id domain.VenueId, data domain.VenueCreationData) error {
	if err := validateHours(data.OpeningHours); err != nil {
		return err
	}
	return v.storage.UpdateVenue(id, data)
}

// Empty hours are allowed and render as "Unknown"; present-but-malformed
// hours are rejected at write time.
func validateHours(spec string) error {
	if spec == "" || hours.Valid(spec) {
		return nil
	}
	return internal_errors.BadRequest("Opening hours must look like 18:00-02:00")
}

func (v *Venue) Delete(id domain.VenueId) error {
	return v.storage.DeleteVenue(id)
}
