package dto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/packpoint-be/internal/models"
)

func validForm() PointForm {
	return PointForm{
		Name:       " Cafe A ",
		Rating:     "4",
		NoiseLevel: "2",
		BusyLevel:  "3",
		Wifi:       "true",
		Amenities:  "outlets, quiet,,patio ",
		Lat:        "40.0",
		Lng:        "-75.0",
	}
}

func TestPointFormParse(t *testing.T) {
	fields, err := validForm().Parse()
	require.NoError(t, err)

	assert.Equal(t, models.PointFields{
		Name:       "Cafe A",
		Rating:     4,
		NoiseLevel: 2,
		BusyLevel:  3,
		Wifi:       true,
		Amenities:  []string{"outlets", "quiet", "patio"},
		Location:   models.Location{Lat: 40, Lng: -75},
	}, fields)
}

func TestPointFormParseWifiFalseIsPresent(t *testing.T) {
	form := validForm()
	form.Wifi = "false"

	fields, err := form.Parse()
	require.NoError(t, err)
	assert.False(t, fields.Wifi)
}

func TestPointFormParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PointForm)
		field  string
	}{
		{"missing name", func(f *PointForm) { f.Name = "  " }, "name"},
		{"missing rating", func(f *PointForm) { f.Rating = "" }, "rating"},
		{"non-numeric rating", func(f *PointForm) { f.Rating = "four" }, "rating"},
		{"rating out of range", func(f *PointForm) { f.Rating = "9" }, "rating"},
		{"zero noise level", func(f *PointForm) { f.NoiseLevel = "0" }, "noise_level"},
		{"missing busy level", func(f *PointForm) { f.BusyLevel = "" }, "busy_level"},
		{"missing wifi", func(f *PointForm) { f.Wifi = "" }, "wifi"},
		{"garbage wifi", func(f *PointForm) { f.Wifi = "maybe" }, "wifi"},
		{"missing lat only", func(f *PointForm) { f.Lat = "" }, "lat"},
		{"missing lng only", func(f *PointForm) { f.Lng = "" }, "lng"},
		{"lat out of range", func(f *PointForm) { f.Lat = "91" }, "lat"},
		{"lng not a number", func(f *PointForm) { f.Lng = "NaN" }, "lng"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			_, err := form.Parse()
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestParseAmenities(t *testing.T) {
	assert.Equal(t, []string{}, ParseAmenities(""))
	assert.Equal(t, []string{}, ParseAmenities(" , ,"))
	assert.Equal(t, []string{"wifi"}, ParseAmenities("wifi"))
	assert.Equal(t, []string{"a", "b"}, ParseAmenities("a,b"))
}

func TestParseLocationAllowsZero(t *testing.T) {
	loc, err := ParseLocation("0", "0")
	require.NoError(t, err)
	assert.Equal(t, models.Location{}, loc)
}

func TestParseID(t *testing.T) {
	id, err := ParseID("pointId", "42")
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)

	for _, raw := range []string{"", "abc", "-1", "0", "1.5"} {
		_, err := ParseID("pointId", raw)
		var verr *ValidationError
		assert.True(t, errors.As(err, &verr), "raw=%q", raw)
	}
}

func TestUserRequestNormalize(t *testing.T) {
	phone, err := UserRequest{PhoneNumber: " +15550100 "}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "+15550100", phone)

	_, err = UserRequest{}.Normalize()
	assert.Error(t, err)
}
