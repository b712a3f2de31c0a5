package handlers

import (
	"errors"
	"net/http"

	"github.com/hongminglow/packpoint-be/internal/http/respond"
	"github.com/hongminglow/packpoint-be/internal/logging"
	"github.com/hongminglow/packpoint-be/internal/media"
)

// MediaHandler serves stored point images.
type MediaHandler struct {
	blobs media.BlobOpener
	log   logging.Logger
}

// NewMediaHandler creates the handler.
func NewMediaHandler(blobs media.BlobOpener) *MediaHandler {
	return &MediaHandler{blobs: blobs, log: logging.GetLogger("http.media")}
}

// Register wires the handler into a ServeMux.
func (h *MediaHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /media/{key...}", h.handle)
}

func (h *MediaHandler) handle(w http.ResponseWriter, r *http.Request) {
	obj, err := h.blobs.Open(r.Context(), r.PathValue("key"))
	if err != nil {
		if errors.Is(err, media.ErrBlobNotFound) {
			respond.Error(w, http.StatusNotFound, "not found")
			return
		}
		h.log.ErrorContext(r.Context(), "open blob failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "failed to read image")
		return
	}
	defer obj.Close()

	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	http.ServeContent(w, r, obj.Name, obj.ModTime, obj)
}
