package handlers

import (
	"context"
	"net/http"

	"github.com/hongminglow/packpoint-be/internal/http/respond"
	"github.com/hongminglow/packpoint-be/internal/logging"
	"github.com/hongminglow/packpoint-be/internal/models"
	"github.com/hongminglow/packpoint-be/internal/models/dto"
)

// SavedPointService is the bookmark behavior the handler depends on.
type SavedPointService interface {
	Save(ctx context.Context, userID, pointID int64) (int64, error)
	Unsave(ctx context.Context, userID, pointID int64) error
	ListByUser(ctx context.Context, userID int64) ([]models.SavedPoint, error)
}

// SavedPointsHandler serves /api/points/saved.
type SavedPointsHandler struct {
	saved SavedPointService
	log   logging.Logger
}

// NewSavedPointsHandler creates the handler.
func NewSavedPointsHandler(saved SavedPointService) *SavedPointsHandler {
	return &SavedPointsHandler{saved: saved, log: logging.GetLogger("http.saved_points")}
}

// Register attaches bookmark routes.
func (h *SavedPointsHandler) Register(mux *http.ServeMux, protect func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /api/points/saved/user/{userId}", h.handleList)
	mux.Handle("POST /api/points/saved/user/{userId}/{pointId}", protect(http.HandlerFunc(h.handleSave)))
	mux.Handle("DELETE /api/points/saved/user/{userId}/{pointId}", protect(http.HandlerFunc(h.handleUnsave)))
}

func (h *SavedPointsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	userID, err := dto.ParseID("userId", r.PathValue("userId"))
	if err != nil {
		writeError(w, r, h.log, err, "invalid user id")
		return
	}
	saved, err := h.saved.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.log, err, "failed to list saved points")
		return
	}
	respond.JSON(w, http.StatusOK, "saved points retrieved", saved)
}

func (h *SavedPointsHandler) handleSave(w http.ResponseWriter, r *http.Request) {
	userID, pointID, err := pairFromPath(r)
	if err != nil {
		writeError(w, r, h.log, err, "invalid ids")
		return
	}
	id, err := h.saved.Save(r.Context(), userID, pointID)
	if err != nil {
		writeError(w, r, h.log, err, "failed to save point")
		return
	}
	respond.JSON(w, http.StatusOK, "point saved", dto.CreatedResponse{ID: id})
}

func (h *SavedPointsHandler) handleUnsave(w http.ResponseWriter, r *http.Request) {
	userID, pointID, err := pairFromPath(r)
	if err != nil {
		writeError(w, r, h.log, err, "invalid ids")
		return
	}
	if err := h.saved.Unsave(r.Context(), userID, pointID); err != nil {
		writeError(w, r, h.log, err, "failed to unsave point")
		return
	}
	respond.JSON(w, http.StatusOK, "point unsaved", nil)
}

func pairFromPath(r *http.Request) (userID, pointID int64, err error) {
	if userID, err = dto.ParseID("userId", r.PathValue("userId")); err != nil {
		return 0, 0, err
	}
	if pointID, err = dto.ParseID("pointId", r.PathValue("pointId")); err != nil {
		return 0, 0, err
	}
	return userID, pointID, nil
}
