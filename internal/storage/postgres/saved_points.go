package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hongminglow/packpoint-be/internal/models"
)

// SavePoint bookmarks a point for a user. A repeated save returns the id of
// the existing relation row; a missing user or point yields ErrNotFound.
func (s *Store) SavePoint(ctx context.Context, userID, pointID int64) (int64, error) {
	const query = `
	WITH inserted AS (
		INSERT INTO saved_points (user_id, point_id)
		VALUES ($1, $2)
		ON CONFLICT ON CONSTRAINT saved_points_user_point_unique DO NOTHING
		RETURNING id
	)
	SELECT id FROM inserted
	UNION ALL
	SELECT id FROM saved_points WHERE user_id = $1 AND point_id = $2
	LIMIT 1;
	`
	var id int64
	if err := s.pool.QueryRow(ctx, query, userID, pointID).Scan(&id); err != nil {
		return 0, mapError(err)
	}
	return id, nil
}

// UnsavePoint removes a bookmark.
func (s *Store) UnsavePoint(ctx context.Context, userID, pointID int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM saved_points WHERE user_id = $1 AND point_id = $2;`, userID, pointID)
	if err != nil {
		return mapError(err)
	}
	return requireRows(tag)
}

// ListSavedByUser returns a user's bookmarks, oldest first.
func (s *Store) ListSavedByUser(ctx context.Context, userID int64) ([]models.SavedPoint, error) {
	rows, err := s.pool.Query(ctx, `
	SELECT id, user_id, point_id, created_at
	FROM saved_points
	WHERE user_id = $1
	ORDER BY id;
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query saved points: %w", err)
	}
	saved, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.SavedPoint])
	if err != nil {
		return nil, fmt.Errorf("scan saved points: %w", err)
	}
	return saved, nil
}
