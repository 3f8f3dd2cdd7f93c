package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nitespot-dev/nitespot/shared/api"
	"github.com/nitespot-dev/nitespot/shared/domain"
	mw "github.com/nitespot-dev/nitespot/shared/middleware"
	"github.com/nitespot-dev/nitespot/shared/utils"
)

func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	viewer := mw.GetViewerFromContext(r)
	if viewer == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	var body api.BookingRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	booking, err := h.booking.Create(viewer, domain.BookingCreationData{
		VenueId: mux.Vars(r)["venue"],
		Date:    body.Date,
		Time:    body.Time,
		Guests:  body.Guests,
		Notes:   body.Notes,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, api.BookingResponse{Booking: booking})
}

// GetVenueBookings pages a venue's bookings for its owner dashboard.
func (h *Handler) GetVenueBookings(w http.ResponseWriter, r *http.Request) {
	viewer := mw.GetViewerFromContext(r)
	if viewer == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	venueId := mux.Vars(r)["venue"]
	if !viewer.Admin() {
		user, err := h.user.Me(viewer)
		if err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
		if !user.OwnsVenue(venueId) {
			http.Error(w, "You do not manage this venue", http.StatusForbidden)
			return
		}
	}

	after, limit, err := parseCursor(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	page, err := h.booking.VenueFeed(venueId, after, limit)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.BookingFeedResponse{Items: page.Items, NextCursor: page.NextCursor, HasMore: page.HasMore})
}

// GetMyBookings returns the viewer's most recent bookings.
func (h *Handler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	viewer := mw.GetViewerFromContext(r)
	if viewer == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	bookings, err := h.booking.Recent(r.Context(), viewer)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.BookingListResponse{Bookings: bookings})
}

// GetAllBookings lists every booking, newest first (admin).
func (h *Handler) GetAllBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.booking.All(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.BookingListResponse{Bookings: bookings})
}

func (h *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	viewer := mw.GetViewerFromContext(r)
	if viewer == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	if err := h.booking.Cancel(viewer, mux.Vars(r)["booking"]); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
