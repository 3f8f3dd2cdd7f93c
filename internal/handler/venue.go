package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nitespot-dev/nitespot/shared/api"
	"github.com/nitespot-dev/nitespot/shared/utils"
)

func (h *Handler) GetVenues(w http.ResponseWriter, r *http.Request) {
	list, err := h.venue.List(r.URL.Query().Get("q"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.VenueListResponse{Premium: list.Premium, Regular: list.Regular})
}

func (h *Handler) GetVenue(w http.ResponseWriter, r *http.Request) {
	venue, err := h.venue.Get(mux.Vars(r)["venue"])
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.VenueResponse{VenueWithStatus: venue})
}

func (h *Handler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var body api.VenueRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	id, err := h.venue.Create(body.CreationData())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, api.VenueCreatedResponse{Id: id})
}

func (h *Handler) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	var body api.VenueRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.venue.Update(mux.Vars(r)["venue"], body.CreationData()); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	if err := h.venue.Delete(mux.Vars(r)["venue"]); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
