package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nitespot-dev/nitespot/shared/api"
	"github.com/nitespot-dev/nitespot/shared/utils"
)

// Admin-only handlers. The AdminOnly middleware has already vetted the
// viewer by the time these run.

func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.user.Users()
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.UserListResponse{Users: users})
}

func (h *Handler) SetUserRole(w http.ResponseWriter, r *http.Request) {
	var body api.SetRoleRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.user.SetRole(mux.Vars(r)["user"], body.Role); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) AssignVenue(w http.ResponseWriter, r *http.Request) {
	var body api.VenueAssignmentRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.user.AssignVenue(mux.Vars(r)["user"], body.VenueId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) UnassignVenue(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.user.UnassignVenue(vars["user"], vars["venue"]); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	overview, err := h.analytics.Overview(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.AnalyticsResponse{
		Totals:         overview.Totals,
		TopVenues:      overview.TopVenues,
		RecentBookings: overview.RecentBookings,
	})
}
