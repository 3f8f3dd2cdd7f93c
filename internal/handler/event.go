package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nitespot-dev/nitespot/shared/api"
	mw "github.com/nitespot-dev/nitespot/shared/middleware"
	"github.com/nitespot-dev/nitespot/shared/utils"
)

func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.event.List()
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.EventListResponse{Events: events})
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.event.Get(mux.Vars(r)["event"])
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.EventResponse{Event: event})
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	viewer := mw.GetViewerFromContext(r)
	if viewer == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	var body api.EventRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	id, err := h.event.Create(viewer, body.CreationData())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, api.EventCreatedResponse{Id: id})
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	viewer := mw.GetViewerFromContext(r)
	if viewer == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	var body api.EventRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.event.Update(viewer, mux.Vars(r)["event"], body.CreationData()); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	viewer := mw.GetViewerFromContext(r)
	if viewer == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	if err := h.event.Delete(viewer, mux.Vars(r)["event"]); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
