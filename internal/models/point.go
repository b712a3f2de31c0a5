package models

import "time"

// Location is a WGS 84 coordinate. Both components are always present.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Point is a geotagged venue record.
type Point struct {
	ID          int64     `json:"id"`
	Owner       string    `json:"owner"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	Rating      int       `json:"rating"`
	NoiseLevel  int       `json:"noise_level"`
	BusyLevel   int       `json:"busy_level"`
	Wifi        bool      `json:"wifi"`
	Amenities   []string  `json:"amenities"`
	Location    Location  `json:"location"`
	ImageURL    *string   `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// PointFields is the full, validated field set written on create and update.
// Owner and image are supplied separately.
type PointFields struct {
	Name        string
	Description string
	Address     string
	Rating      int
	NoiseLevel  int
	BusyLevel   int
	Wifi        bool
	Amenities   []string
	Location    Location
}
