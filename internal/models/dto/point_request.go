package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// PointRequest is the JSON body of a point create or update. Scalars may be
// sent typed (4, true, 40.0) or as strings ("4", "true", "40.0"); amenities
// may be a comma-delimited string or an array of strings.
type PointRequest struct {
	Name        Scalar      `json:"name"`
	Description Scalar      `json:"description"`
	Address     Scalar      `json:"address"`
	Rating      Scalar      `json:"rating"`
	NoiseLevel  Scalar      `json:"noise_level"`
	BusyLevel   Scalar      `json:"busy_level"`
	Wifi        Scalar      `json:"wifi"`
	Amenities   AmenityList `json:"amenities"`
	Lat         Scalar      `json:"lat"`
	Lng         Scalar      `json:"lng"`
}

// Form turns the request into the text form that PointForm.Parse validates,
// so JSON and form bodies share one set of rules.
func (r PointRequest) Form() PointForm {
	return PointForm{
		Name:        string(r.Name),
		Description: string(r.Description),
		Address:     string(r.Address),
		Rating:      string(r.Rating),
		NoiseLevel:  string(r.NoiseLevel),
		BusyLevel:   string(r.BusyLevel),
		Wifi:        string(r.Wifi),
		Amenities:   strings.Join(r.Amenities, ","),
		Lat:         string(r.Lat),
		Lng:         string(r.Lng),
	}
}

var errNotScalar = errors.New("must be a string, number or boolean")

// Scalar holds the text of a JSON string, number or boolean. null and absent
// both leave it empty.
type Scalar string

// UnmarshalJSON implements json.Unmarshaler.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*s = ""
	case data[0] == '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*s = Scalar(text)
	case data[0] == '{' || data[0] == '[':
		return errNotScalar
	default:
		*s = Scalar(data)
	}
	return nil
}

// AmenityList accepts "wifi, outlets" or ["wifi", "outlets"].
type AmenityList []string

// UnmarshalJSON implements json.Unmarshaler.
func (a *AmenityList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var tags []string
		if err := json.Unmarshal(data, &tags); err != nil {
			return err
		}
		*a = tags
		return nil
	}
	var text Scalar
	if err := text.UnmarshalJSON(data); err != nil {
		return err
	}
	*a = AmenityList{string(text)}
	return nil
}
