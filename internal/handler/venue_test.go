package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitespot-dev/nitespot/shared/api"
	"github.com/nitespot-dev/nitespot/shared/domain"
	internal_errors "github.com/nitespot-dev/nitespot/shared/errors"
)

type MockVenueService struct {
	MockList   func(query string) (domain.VenueList, error)
	MockGet    func(id domain.VenueId) (domain.VenueWithStatus, error)
	MockCreate func(data domain.VenueCreationData) (domain.VenueId, error)
	MockUpdate func(id domain.VenueId, data domain.VenueCreationData) error
	MockDelete func(id domain.VenueId) error
}

func (m *MockVenueService) List(query string) (domain.VenueList, error) {
	if m.MockList != nil {
		return m.MockList(query)
	}
	return domain.VenueList{}, nil
}

func (m *MockVenueService) Get(id domain.VenueId) (domain.VenueWithStatus, error) {
	if m.MockGet != nil {
		return m.MockGet(id)
	}
	return domain.VenueWithStatus{}, nil
}

func (m *MockVenueService) Create(data domain.VenueCreationData) (domain.VenueId, error) {
	if m.MockCreate != nil {
		return m.MockCreate(data)
	}
	return "", nil
}

func (m *MockVenueService) Update(id domain.VenueId, data domain.VenueCreationData) error {
	if m.MockUpdate != nil {
		return m.MockUpdate(id, data)
	}
	return nil
}

func (m *MockVenueService) Delete(id domain.VenueId) error {
	if m.MockDelete != nil {
		return m.MockDelete(id)
	}
	return nil
}

func TestGetVenuesHandler(t *testing.T) {
	h := &Handler{}

	router := mux.NewRouter()
	router.HandleFunc("/v1/venues", h.GetVenues).Methods("GET")

	t.Run("successful with search query", func(t *testing.T) {
		h.venue = &MockVenueService{
			MockList: func(query string) (domain.VenueList, error) {
				assert.Equal(t, "jazz", query)
				return domain.VenueList{
					Premium: []domain.VenueWithStatus{{Venue: domain.Venue{Id: "v1", Name: "Blue Note", IsPremium: true}, Open: true}},
					Regular: []domain.VenueWithStatus{{Venue: domain.Venue{Id: "v2", Name: "Cellar"}}},
				}, nil
			},
		}

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/v1/venues?q=jazz", nil)
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp api.VenueListResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		require.Len(t, resp.Premium, 1)
		require.Len(t, resp.Regular, 1)
		assert.Equal(t, "Blue Note", resp.Premium[0].Name)
		assert.True(t, resp.Premium[0].Open)
	})

	t.Run("service error", func(t *testing.T) {
		h.venue = &MockVenueService{
			MockList: func(query string) (domain.VenueList, error) {
				return domain.VenueList{}, errors.New("mock")
			},
		}

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/v1/venues", nil)
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestGetVenueHandler(t *testing.T) {
	h := &Handler{}

	router := mux.NewRouter()
	router.HandleFunc("/v1/venues/{venue}", h.GetVenue).Methods("GET")

	t.Run("successful", func(t *testing.T) {
		h.venue = &MockVenueService{
			MockGet: func(id domain.VenueId) (domain.VenueWithStatus, error) {
				return domain.VenueWithStatus{Venue: domain.Venue{Id: id, Name: "Blue Note"}, StatusMessage: "Unknown"}, nil
			},
		}

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/v1/venues/v1", nil)
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp api.VenueResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "v1", resp.Id)
	})

	t.Run("not found", func(t *testing.T) {
		h.venue = &MockVenueService{
			MockGet: func(id domain.VenueId) (domain.VenueWithStatus, error) {
				return domain.VenueWithStatus{}, internal_errors.NotFound("Venue not found")
			},
		}

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/v1/venues/missing", nil)
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestCreateVenueHandler(t *testing.T) {
	h := &Handler{}

	router := mux.NewRouter()
	router.HandleFunc("/v1/admin/venues", h.CreateVenue).Methods("POST")

	t.Run("successful", func(t *testing.T) {
		h.venue = &MockVenueService{
			MockCreate: func(data domain.VenueCreationData) (domain.VenueId, error) {
				assert.Equal(t, "Blue Note", data.Name)
				assert.Equal(t, "19:00-02:00", data.OpeningHours)
				return "v1", nil
			},
		}

		body := []byte(`{"name": "Blue Note", "opening_hours": "19:00-02:00", "is_premium": true}`)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/venues", bytes.NewBuffer(body))
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var resp api.VenueCreatedResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "v1", resp.Id)
	})

	t.Run("missing name", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/venues", bytes.NewBuffer([]byte(`{"location": "Main st"}`)))
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("malformed hours rejected by service", func(t *testing.T) {
		h.venue = &MockVenueService{
			MockCreate: func(data domain.VenueCreationData) (domain.VenueId, error) {
				return "", internal_errors.BadRequest("Invalid opening hours")
			},
		}

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/venues", bytes.NewBuffer([]byte(`{"name": "Blue Note", "opening_hours": "25:00-26:00"}`)))
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestUpdateVenueHandler(t *testing.T) {
	h := &Handler{}

	router := mux.NewRouter()
	router.HandleFunc("/v1/admin/venues/{venue}", h.UpdateVenue).Methods("PUT")

	t.Run("successful", func(t *testing.T) {
		h.venue = &MockVenueService{
			MockUpdate: func(id domain.VenueId, data domain.VenueCreationData) error {
				assert.Equal(t, "v1", id)
				return nil
			},
		}

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/v1/admin/venues/v1", bytes.NewBuffer([]byte(`{"name": "Blue Note"}`)))
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("not found", func(t *testing.T) {
		h.venue = &MockVenueService{
			MockUpdate: func(id domain.VenueId, data domain.VenueCreationData) error {
				return internal_errors.NotFound("Venue not found")
			},
		}

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/v1/admin/venues/missing", bytes.NewBuffer([]byte(`{"name": "Blue Note"}`)))
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestDeleteVenueHandler(t *testing.T) {
	h := &Handler{}

	router := mux.NewRouter()
	router.HandleFunc("/v1/admin/venues/{venue}", h.DeleteVenue).Methods("DELETE")

	t.Run("successful", func(t *testing.T) {
		h.venue = &MockVenueService{
			MockDelete: func(id domain.VenueId) error {
				assert.Equal(t, "v1", id)
				return nil
			},
		}

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/v1/admin/venues/v1", nil)
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("service error", func(t *testing.T) {
		h.venue = &MockVenueService{
			MockDelete: func(id domain.VenueId) error {
				return errors.New("mock")
			},
		}

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/v1/admin/venues/v1", nil)
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
