package service

import (
	"context"

	"github.com/hongminglow/packpoint-be/internal/models"
	"github.com/hongminglow/packpoint-be/internal/storage"
)

// SavedPointService manages user bookmarks.
type SavedPointService struct {
	store storage.SavedPointStore
}

// NewSavedPointService creates a saved point service.
func NewSavedPointService(store storage.SavedPointStore) *SavedPointService {
	return &SavedPointService{store: store}
}

// Save bookmarks pointID for userID. Saving twice returns the same id; an
// unknown user or point is storage.ErrNotFound.
func (s *SavedPointService) Save(ctx context.Context, userID, pointID int64) (int64, error) {
	id, err := s.store.SavePoint(ctx, userID, pointID)
	return id, upstream("save point", err)
}

// Unsave removes the bookmark or reports storage.ErrNotFound.
func (s *SavedPointService) Unsave(ctx context.Context, userID, pointID int64) error {
	return upstream("unsave point", s.store.UnsavePoint(ctx, userID, pointID))
}

// ListByUser returns the bookmarks of userID.
func (s *SavedPointService) ListByUser(ctx context.Context, userID int64) ([]models.SavedPoint, error) {
	saved, err := s.store.ListSavedByUser(ctx, userID)
	return saved, upstream("list saved points", err)
}
