package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/packpoint-be/internal/models"
)

// ErrNotFound indicates a record does not exist or an operation matched zero rows.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// PointStore owns point rows.
type PointStore interface {
	ListPoints(ctx context.Context) ([]models.Point, error)
	ListPointsByOwner(ctx context.Context, owner string) ([]models.Point, error)
	GetPoint(ctx context.Context, id int64) (models.Point, error)
	// FindNearby returns points whose location lies within radiusMeters of
	// origin by geodesic distance. Ordering is unspecified.
	FindNearby(ctx context.Context, origin models.Location, radiusMeters float64) ([]models.Point, error)
	CreatePoint(ctx context.Context, fields models.PointFields, owner string, imageURL *string) (int64, error)
	// UpdatePoint replaces every scalar field. A nil imageURL keeps the stored value.
	UpdatePoint(ctx context.Context, id int64, fields models.PointFields, imageURL *string) error
	// DeletePoint removes the row and returns the image URL it referenced, if any.
	DeletePoint(ctx context.Context, id int64) (*string, error)
}

// SavedPointStore owns the user/point bookmark relation.
type SavedPointStore interface {
	// SavePoint is idempotent: saving an already saved pair returns the existing id.
	SavePoint(ctx context.Context, userID, pointID int64) (int64, error)
	UnsavePoint(ctx context.Context, userID, pointID int64) error
	ListSavedByUser(ctx context.Context, userID int64) ([]models.SavedPoint, error)
}

// UserStore owns user rows.
type UserStore interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id int64) (models.User, error)
	// FindByExternalID reports absence with ok=false rather than an error.
	FindByExternalID(ctx context.Context, externalID string) (user models.User, ok bool, err error)
	CreateUser(ctx context.Context, phoneNumber, externalID string) (int64, error)
	UpdateUser(ctx context.Context, id int64, phoneNumber string) error
	DeleteUserByExternalID(ctx context.Context, externalID string) error
}

// Pinger is satisfied by stores that can report connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}
