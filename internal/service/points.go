package service

import (
	"context"

	"github.com/hongminglow/packpoint-be/internal/geo"
	"github.com/hongminglow/packpoint-be/internal/logging"
	"github.com/hongminglow/packpoint-be/internal/media"
	"github.com/hongminglow/packpoint-be/internal/models"
	"github.com/hongminglow/packpoint-be/internal/storage"
)

// PointService runs point operations. Writes that carry an image are
// two-phase: the upload happens first and is discarded if the row write fails.
type PointService struct {
	store    storage.PointStore
	attacher *media.Attacher
	log      logging.Logger
}

// NewPointService creates a point service.
func NewPointService(store storage.PointStore, attacher *media.Attacher) *PointService {
	return &PointService{
		store:    store,
		attacher: attacher,
		log:      logging.GetLogger("service.points"),
	}
}

// List returns every point.
func (s *PointService) List(ctx context.Context) ([]models.Point, error) {
	points, err := s.store.ListPoints(ctx)
	return points, upstream("list points", err)
}

// ListByOwner returns the points created by uid.
func (s *PointService) ListByOwner(ctx context.Context, uid string) ([]models.Point, error) {
	points, err := s.store.ListPointsByOwner(ctx, uid)
	return points, upstream("list points by owner", err)
}

// Get returns one point or storage.ErrNotFound.
func (s *PointService) Get(ctx context.Context, id int64) (models.Point, error) {
	point, err := s.store.GetPoint(ctx, id)
	return point, upstream("get point", err)
}

// Nearby returns points within geo.NearbyRadiusMeters of origin. Containment
// is decided geodesically by the store; the order is the approximate planar
// ranking from geo.SortByApprox.
func (s *PointService) Nearby(ctx context.Context, origin models.Location) ([]models.Point, error) {
	points, err := s.store.FindNearby(ctx, origin, geo.NearbyRadiusMeters)
	if err != nil {
		return nil, upstream("find nearby points", err)
	}
	geo.SortByApprox(points, origin)
	return points, nil
}

// Create stores the optional upload, then inserts the point owned by uid.
func (s *PointService) Create(ctx context.Context, fields models.PointFields, uid string, upload *media.Upload) (int64, error) {
	attachment, err := s.attacher.Attach(ctx, upload)
	if err != nil {
		return 0, upstream("attach image", err)
	}

	id, err := s.store.CreatePoint(ctx, fields, uid, attachmentURL(attachment))
	if err != nil {
		s.attacher.Discard(ctx, attachment)
		return 0, upstream("create point", err)
	}

	s.log.InfoContext(ctx, "point created", "point_id", id, "with_image", attachment != nil)
	return id, nil
}

// Update replaces every field of point id. Without an upload the stored image
// is kept; with one, the replaced image is dropped after the row is written.
func (s *PointService) Update(ctx context.Context, id int64, fields models.PointFields, upload *media.Upload) error {
	var previous *string
	if upload != nil {
		current, err := s.store.GetPoint(ctx, id)
		if err != nil {
			return upstream("update point", err)
		}
		previous = current.ImageURL
	}

	attachment, err := s.attacher.Attach(ctx, upload)
	if err != nil {
		return upstream("attach image", err)
	}

	if err := s.store.UpdatePoint(ctx, id, fields, attachmentURL(attachment)); err != nil {
		s.attacher.Discard(ctx, attachment)
		return upstream("update point", err)
	}

	if attachment != nil {
		s.attacher.DiscardURL(ctx, previous)
	}
	s.log.InfoContext(ctx, "point updated", "point_id", id, "with_image", attachment != nil)
	return nil
}

// Delete removes point id and drops the image it referenced.
func (s *PointService) Delete(ctx context.Context, id int64) error {
	imageURL, err := s.store.DeletePoint(ctx, id)
	if err != nil {
		return upstream("delete point", err)
	}
	s.attacher.DiscardURL(ctx, imageURL)
	s.log.InfoContext(ctx, "point deleted", "point_id", id)
	return nil
}

func attachmentURL(attachment *media.Attachment) *string {
	if attachment == nil {
		return nil
	}
	return &attachment.URL
}
