package models

import "time"

// SavedPoint is a user's bookmark of a point.
type SavedPoint struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	PointID   int64     `json:"point_id"`
	CreatedAt time.Time `json:"created_at"`
}
