package dto

import (
	"math"
	"strconv"
	"strings"

	"github.com/hongminglow/packpoint-be/internal/models"
)

// Accepted bounds for the small integer attributes of a point.
const (
	MinLevel = 1
	MaxLevel = 5
)

// PointForm is the raw field set of a create or update request, as read
// from form values. Every field arrives as text.
type PointForm struct {
	Name        string
	Description string
	Address     string
	Rating      string
	NoiseLevel  string
	BusyLevel   string
	Wifi        string
	Amenities   string
	Lat         string
	Lng         string
}

// Parse validates the form and converts it into typed point fields.
// Required: name, rating, noise_level, busy_level, wifi, lat, lng.
func (f PointForm) Parse() (models.PointFields, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return models.PointFields{}, Required("name")
	}
	rating, err := parseLevel("rating", f.Rating)
	if err != nil {
		return models.PointFields{}, err
	}
	noise, err := parseLevel("noise_level", f.NoiseLevel)
	if err != nil {
		return models.PointFields{}, err
	}
	busy, err := parseLevel("busy_level", f.BusyLevel)
	if err != nil {
		return models.PointFields{}, err
	}
	wifi, err := parseFlag("wifi", f.Wifi)
	if err != nil {
		return models.PointFields{}, err
	}
	loc, err := ParseLocation(f.Lat, f.Lng)
	if err != nil {
		return models.PointFields{}, err
	}

	return models.PointFields{
		Name:        name,
		Description: strings.TrimSpace(f.Description),
		Address:     strings.TrimSpace(f.Address),
		Rating:      rating,
		NoiseLevel:  noise,
		BusyLevel:   busy,
		Wifi:        wifi,
		Amenities:   ParseAmenities(f.Amenities),
		Location:    loc,
	}, nil
}

// ParseAmenities splits comma-delimited tags. Blank input yields an empty,
// non-nil slice and blank entries are dropped.
func ParseAmenities(input string) []string {
	out := []string{}
	for _, part := range strings.Split(input, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// ParseLocation requires both coordinates to be present, numeric and within
// WGS 84 bounds. A single missing coordinate is an error.
func ParseLocation(lat, lng string) (models.Location, error) {
	latV, err := parseCoordinate("lat", lat, 90)
	if err != nil {
		return models.Location{}, err
	}
	lngV, err := parseCoordinate("lng", lng, 180)
	if err != nil {
		return models.Location{}, err
	}
	return models.Location{Lat: latV, Lng: lngV}, nil
}

func parseCoordinate(field, raw string, limit float64) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, Required(field)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, Invalid(field, "must be a number")
	}
	if v < -limit || v > limit {
		return 0, Invalid(field, "out of range")
	}
	return v, nil
}

func parseLevel(field, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, Required(field)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, Invalid(field, "must be an integer")
	}
	if v < MinLevel || v > MaxLevel {
		return 0, Invalid(field, "must be between 1 and 5")
	}
	return v, nil
}

func parseFlag(field, raw string) (bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, Required(field)
	}
	switch strings.ToLower(raw) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, Invalid(field, "must be true or false")
	}
	return v, nil
}
