package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/hongminglow/packpoint-be/internal/models"
)

const pointColumns = `id, owner, name, description, address, rating, noise_level, busy_level, wifi, amenities,
	ST_Y(location::geometry), ST_X(location::geometry), image_url, created_at`

// ListPoints returns every point.
func (s *Store) ListPoints(ctx context.Context) ([]models.Point, error) {
	return s.queryPoints(ctx, `SELECT `+pointColumns+` FROM points ORDER BY id;`)
}

// ListPointsByOwner returns the points created by the given external identity.
func (s *Store) ListPointsByOwner(ctx context.Context, owner string) ([]models.Point, error) {
	return s.queryPoints(ctx, `SELECT `+pointColumns+` FROM points WHERE owner = $1 ORDER BY id;`, owner)
}

// GetPoint fetches a single point.
func (s *Store) GetPoint(ctx context.Context, id int64) (models.Point, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+pointColumns+` FROM points WHERE id = $1;`, id)
	point, err := scanPoint(row)
	if err != nil {
		return models.Point{}, mapError(err)
	}
	return point, nil
}

// FindNearby filters on geography distance, so the predicate is a true
// spheroid distance at every latitude and across the antimeridian.
func (s *Store) FindNearby(ctx context.Context, origin models.Location, radiusMeters float64) ([]models.Point, error) {
	const query = `
	SELECT ` + pointColumns + `
	FROM points
	WHERE ST_DWithin(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography, $3);
	`
	return s.queryPoints(ctx, query, origin.Lng, origin.Lat, radiusMeters)
}

// CreatePoint inserts a point and returns its id.
func (s *Store) CreatePoint(ctx context.Context, fields models.PointFields, owner string, imageURL *string) (int64, error) {
	const query = `
	INSERT INTO points (owner, name, description, address, rating, noise_level, busy_level, wifi, amenities, location, image_url)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, ST_SetSRID(ST_MakePoint($10, $11), 4326)::geography, $12)
	RETURNING id;
	`
	var id int64
	err := s.pool.QueryRow(ctx, query,
		owner, fields.Name, fields.Description, fields.Address,
		fields.Rating, fields.NoiseLevel, fields.BusyLevel, fields.Wifi, amenitiesOrEmpty(fields.Amenities),
		fields.Location.Lng, fields.Location.Lat, textParam(imageURL),
	).Scan(&id)
	if err != nil {
		return 0, mapError(err)
	}
	return id, nil
}

// UpdatePoint replaces all scalar fields of a point. The image URL is only
// overwritten when a new one is supplied.
func (s *Store) UpdatePoint(ctx context.Context, id int64, fields models.PointFields, imageURL *string) error {
	const query = `
	UPDATE points SET
		name = $2,
		description = $3,
		address = $4,
		rating = $5,
		noise_level = $6,
		busy_level = $7,
		wifi = $8,
		amenities = $9,
		location = ST_SetSRID(ST_MakePoint($10, $11), 4326)::geography,
		image_url = COALESCE($12::text, image_url)
	WHERE id = $1;
	`
	tag, err := s.pool.Exec(ctx, query,
		id, fields.Name, fields.Description, fields.Address,
		fields.Rating, fields.NoiseLevel, fields.BusyLevel, fields.Wifi, amenitiesOrEmpty(fields.Amenities),
		fields.Location.Lng, fields.Location.Lat, textParam(imageURL),
	)
	if err != nil {
		return mapError(err)
	}
	return requireRows(tag)
}

// DeletePoint removes a point and returns the image URL it held.
func (s *Store) DeletePoint(ctx context.Context, id int64) (*string, error) {
	var imageURL pgtype.Text
	if err := s.pool.QueryRow(ctx, `DELETE FROM points WHERE id = $1 RETURNING image_url;`, id).Scan(&imageURL); err != nil {
		return nil, mapError(err)
	}
	return textValue(imageURL), nil
}

func (s *Store) queryPoints(ctx context.Context, query string, args ...any) ([]models.Point, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query points: %w", err)
	}
	points, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Point, error) {
		return scanPoint(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan points: %w", err)
	}
	return points, nil
}

func scanPoint(row pgx.Row) (models.Point, error) {
	var (
		p        models.Point
		imageURL pgtype.Text
	)
	if err := row.Scan(
		&p.ID, &p.Owner, &p.Name, &p.Description, &p.Address,
		&p.Rating, &p.NoiseLevel, &p.BusyLevel, &p.Wifi, &p.Amenities,
		&p.Location.Lat, &p.Location.Lng, &imageURL, &p.CreatedAt,
	); err != nil {
		return models.Point{}, err
	}
	if p.Amenities == nil {
		p.Amenities = []string{}
	}
	p.ImageURL = textValue(imageURL)
	return p, nil
}

func amenitiesOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func textParam(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func textValue(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	v := t.String
	return &v
}
