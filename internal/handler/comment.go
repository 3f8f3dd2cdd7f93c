package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nitespot-dev/nitespot/shared/api"
	"github.com/nitespot-dev/nitespot/shared/domain"
	mw "github.com/nitespot-dev/nitespot/shared/middleware"
	"github.com/nitespot-dev/nitespot/shared/utils"
)

// commentParent resolves the feed parent from the route: venue and event
// comment endpoints share these handlers.
func commentParent(r *http.Request) domain.FeedParent {
	vars := mux.Vars(r)
	if id, ok := vars["venue"]; ok {
		return domain.FeedParent{Kind: domain.ParentVenue, Id: id}
	}
	return domain.FeedParent{Kind: domain.ParentEvent, Id: vars["event"]}
}

func (h *Handler) GetComments(w http.ResponseWriter, r *http.Request) {
	after, limit, err := parseCursor(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	page, err := h.comment.Feed(commentParent(r), after, limit)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.CommentFeedResponse{Items: page.Items, NextCursor: page.NextCursor, HasMore: page.HasMore})
}

func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	viewer := mw.GetViewerFromContext(r)
	if viewer == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	var body api.CommentRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	comment, err := h.comment.Create(viewer, commentParent(r), body.Content)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, api.CommentResponse{Comment: comment})
}

func (h *Handler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	viewer := mw.GetViewerFromContext(r)
	if viewer == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	var body api.CommentRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.comment.Update(viewer, mux.Vars(r)["comment"], body.Content); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	viewer := mw.GetViewerFromContext(r)
	if viewer == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	if err := h.comment.Delete(viewer, mux.Vars(r)["comment"]); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
