package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nitespot-dev/nitespot/shared/api"
	mw "github.com/nitespot-dev/nitespot/shared/middleware"
	"github.com/nitespot-dev/nitespot/shared/utils"
)

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	viewer := mw.GetViewerFromContext(r)
	if viewer == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	user, err := h.user.Me(viewer)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.ProfileResponse{User: user})
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	viewer := mw.GetViewerFromContext(r)
	if viewer == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	var body api.UpdateProfileRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.user.UpdateProfile(viewer, body.Username, body.Phone); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// UploadAvatar accepts a multipart form with an "avatar" file field.
func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	viewer := mw.GetViewerFromContext(r)
	if viewer == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(h.cfg.Public.MaxAvatarBytes + 1<<20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	files := r.MultipartForm.File["avatar"]
	if len(files) != 1 {
		http.Error(w, "Exactly one avatar file required", http.StatusBadRequest)
		return
	}

	url, err := h.media.SaveAvatar(viewer, files[0])
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.AvatarResponse{AvatarURL: url})
}

func (h *Handler) GetBookmarks(w http.ResponseWriter, r *http.Request) {
	viewer := mw.GetViewerFromContext(r)
	if viewer == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	events, err := h.user.Bookmarks(viewer)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.BookmarkListResponse{Events: events})
}

func (h *Handler) AddBookmark(w http.ResponseWriter, r *http.Request) {
	viewer := mw.GetViewerFromContext(r)
	if viewer == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	if err := h.user.AddBookmark(viewer, mux.Vars(r)["event"]); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) RemoveBookmark(w http.ResponseWriter, r *http.Request) {
	viewer := mw.GetViewerFromContext(r)
	if viewer == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	if err := h.user.RemoveBookmark(viewer, mux.Vars(r)["event"]); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
