package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/hongminglow/packpoint-be/internal/http/respond"
	"github.com/hongminglow/packpoint-be/internal/logging"
	"github.com/hongminglow/packpoint-be/internal/media"
	"github.com/hongminglow/packpoint-be/internal/models/dto"
	"github.com/hongminglow/packpoint-be/internal/service"
	"github.com/hongminglow/packpoint-be/internal/storage"
)

// writeError maps a service error onto a status code. Anything unclassified
// is logged and reported as a generic failure.
func writeError(w http.ResponseWriter, r *http.Request, log logging.Logger, err error, failure string) {
	var validation *dto.ValidationError
	var tooBig *http.MaxBytesError
	switch {
	case errors.As(err, &validation):
		respond.Error(w, http.StatusBadRequest, validation.Error())
	case errors.Is(err, storage.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "not found")
	case errors.Is(err, storage.ErrAlreadyExists):
		respond.Error(w, http.StatusConflict, "already exists")
	case errors.Is(err, media.ErrTooLarge), errors.As(err, &tooBig):
		respond.Error(w, http.StatusRequestEntityTooLarge, "image too large")
	case errors.Is(err, media.ErrUnsupportedType), errors.Is(err, media.ErrEmpty):
		respond.Error(w, http.StatusBadRequest, "image must be a jpeg, png, gif, webp, tiff or bmp file")
	case errors.Is(err, context.Canceled):
		log.DebugContext(r.Context(), "request canceled", "error", err)
	case errors.Is(err, service.ErrUpstream):
		log.ErrorContext(r.Context(), failure, "error", err)
		respond.Error(w, http.StatusBadGateway, failure)
	default:
		log.ErrorContext(r.Context(), failure, "error", err)
		respond.Error(w, http.StatusInternalServerError, failure)
	}
}
