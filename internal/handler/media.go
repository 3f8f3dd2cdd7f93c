package handler

import (
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/gorilla/mux"

	"github.com/nitespot-dev/nitespot/shared/utils"
)

// GetMedia streams a stored media file by its path relative to the media root.
func (h *Handler) GetMedia(w http.ResponseWriter, r *http.Request) {
	relativePath := mux.Vars(r)["path"]
	if relativePath == "" || strings.Contains(relativePath, "..") {
		http.Error(w, "Invalid media path", http.StatusBadRequest)
		return
	}

	file, err := h.media.Open(relativePath)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	defer file.Close()

	if ct := mime.TypeByExtension(path.Ext(relativePath)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	io.Copy(w, file)
}
