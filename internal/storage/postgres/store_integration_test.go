package postgres

import (
	"context"
	"fmt"
	"math"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/packpoint-be/internal/geo"
	"github.com/hongminglow/packpoint-be/internal/models"
	"github.com/hongminglow/packpoint-be/internal/storage"
)

// openIntegrationStore connects to a live PostGIS database. Set
// RUN_DB_INTEGRATION=true and DATABASE_URL to run these tests.
func openIntegrationStore(t *testing.T) *Store {
	t.Helper()
	if os.Getenv("RUN_DB_INTEGRATION") != "true" {
		t.Skip("set RUN_DB_INTEGRATION=true to run this integration test")
	}

	loadDotEnv()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	store, err := New(ctx, dbURL)
	require.NoError(t, err, "init store")
	t.Cleanup(store.Close)
	return store
}

func cafeFields() models.PointFields {
	return models.PointFields{
		Name:       "Cafe A",
		Rating:     4,
		NoiseLevel: 2,
		BusyLevel:  3,
		Wifi:       true,
		Amenities:  []string{},
		Location:   models.Location{Lat: 40.0, Lng: -75.0},
	}
}

func uniqueOwner(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

func containsPoint(points []models.Point, id int64) bool {
	for _, p := range points {
		if p.ID == id {
			return true
		}
	}
	return false
}

func TestPointRoundTripIntegration(t *testing.T) {
	store := openIntegrationStore(t)
	ctx := context.Background()
	owner := uniqueOwner("owner")

	fields := cafeFields()
	fields.Description = "corner spot"
	fields.Amenities = []string{"outlets", "patio"}

	id, err := store.CreatePoint(ctx, fields, owner, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = store.DeletePoint(context.Background(), id) })

	got, err := store.GetPoint(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, owner, got.Owner)
	assert.Equal(t, fields.Name, got.Name)
	assert.Equal(t, fields.Description, got.Description)
	assert.Equal(t, fields.Rating, got.Rating)
	assert.Equal(t, fields.NoiseLevel, got.NoiseLevel)
	assert.Equal(t, fields.BusyLevel, got.BusyLevel)
	assert.Equal(t, fields.Wifi, got.Wifi)
	assert.Equal(t, fields.Amenities, got.Amenities)
	assert.InDelta(t, fields.Location.Lat, got.Location.Lat, 1e-9)
	assert.InDelta(t, fields.Location.Lng, got.Location.Lng, 1e-9)
	assert.Nil(t, got.ImageURL)

	mine, err := store.ListPointsByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, id, mine[0].ID)
}

func TestPointEmptyAmenitiesIntegration(t *testing.T) {
	store := openIntegrationStore(t)
	ctx := context.Background()

	fields := cafeFields()
	fields.Amenities = nil
	id, err := store.CreatePoint(ctx, fields, uniqueOwner("owner"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = store.DeletePoint(context.Background(), id) })

	got, err := store.GetPoint(ctx, id)
	require.NoError(t, err)
	assert.NotNil(t, got.Amenities)
	assert.Empty(t, got.Amenities)
}

func TestFindNearbyIntegration(t *testing.T) {
	store := openIntegrationStore(t)
	ctx := context.Background()

	id, err := store.CreatePoint(ctx, cafeFields(), uniqueOwner("owner"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = store.DeletePoint(context.Background(), id) })

	origin := models.Location{Lat: 40.0, Lng: -75.0}
	near, err := store.FindNearby(ctx, origin, geo.NearbyRadiusMeters)
	require.NoError(t, err)
	assert.True(t, containsPoint(near, id))
	for _, p := range near {
		assert.LessOrEqual(t, greatCircleMeters(origin, p.Location), geo.NearbyRadiusMeters*1.005)
	}

	far, err := store.FindNearby(ctx, models.Location{Lat: 10.0, Lng: 10.0}, geo.NearbyRadiusMeters)
	require.NoError(t, err)
	assert.False(t, containsPoint(far, id))
}

func TestUpdatePointImageCoalesceIntegration(t *testing.T) {
	store := openIntegrationStore(t)
	ctx := context.Background()

	first := "http://localhost/media/first.png"
	id, err := store.CreatePoint(ctx, cafeFields(), uniqueOwner("owner"), &first)
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = store.DeletePoint(context.Background(), id) })

	fields := cafeFields()
	fields.Name = "Cafe B"
	require.NoError(t, store.UpdatePoint(ctx, id, fields, nil))

	got, err := store.GetPoint(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Cafe B", got.Name)
	require.NotNil(t, got.ImageURL)
	assert.Equal(t, first, *got.ImageURL)

	second := "http://localhost/media/second.png"
	require.NoError(t, store.UpdatePoint(ctx, id, fields, &second))
	got, err = store.GetPoint(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, second, *got.ImageURL)
}

func TestPointNotFoundIntegration(t *testing.T) {
	store := openIntegrationStore(t)
	ctx := context.Background()

	id, err := store.CreatePoint(ctx, cafeFields(), uniqueOwner("owner"), nil)
	require.NoError(t, err)

	_, err = store.DeletePoint(ctx, id)
	require.NoError(t, err)

	_, err = store.DeletePoint(ctx, id)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = store.GetPoint(ctx, id)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = store.UpdatePoint(ctx, id, cafeFields(), nil)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSavedPointsIntegration(t *testing.T) {
	store := openIntegrationStore(t)
	ctx := context.Background()
	uid := uniqueOwner("saver")

	userID, err := store.CreateUser(ctx, "+15550100", uid)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.DeleteUserByExternalID(context.Background(), uid) })

	pointID, err := store.CreatePoint(ctx, cafeFields(), uid, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = store.DeletePoint(context.Background(), pointID) })

	savedID, err := store.SavePoint(ctx, userID, pointID)
	require.NoError(t, err)

	again, err := store.SavePoint(ctx, userID, pointID)
	require.NoError(t, err)
	assert.Equal(t, savedID, again, "duplicate save returns the existing relation")

	saved, err := store.ListSavedByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, pointID, saved[0].PointID)

	require.NoError(t, store.UnsavePoint(ctx, userID, pointID))
	saved, err = store.ListSavedByUser(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, saved)

	assert.ErrorIs(t, store.UnsavePoint(ctx, userID, pointID), storage.ErrNotFound)

	_, err = store.SavePoint(ctx, userID, pointID+1_000_000)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUsersIntegration(t *testing.T) {
	store := openIntegrationStore(t)
	ctx := context.Background()
	uid := uniqueOwner("user")

	_, ok, err := store.FindByExternalID(ctx, uid)
	require.NoError(t, err)
	assert.False(t, ok)

	id, err := store.CreateUser(ctx, "+15550101", uid)
	require.NoError(t, err)

	_, err = store.CreateUser(ctx, "+15550102", uid)
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	require.NoError(t, store.UpdateUser(ctx, id, "+15550199"))
	user, err := store.GetUser(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "+15550199", user.PhoneNumber)

	found, ok, err := store.FindByExternalID(ctx, uid)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, id, found.ID)

	require.NoError(t, store.DeleteUserByExternalID(ctx, uid))
	assert.ErrorIs(t, store.DeleteUserByExternalID(ctx, uid), storage.ErrNotFound)
	assert.ErrorIs(t, store.UpdateUser(ctx, id, "+1"), storage.ErrNotFound)
}

func TestPingIntegration(t *testing.T) {
	store := openIntegrationStore(t)
	require.NoError(t, store.Ping(context.Background()))
}

func loadDotEnv() {
	paths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}
	for _, path := range paths {
		_ = godotenv.Overload(path)
	}
}

// greatCircleMeters is an independent haversine check on what PostGIS returns.
func greatCircleMeters(a, b models.Location) float64 {
	const earthRadius = 6371008.8
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := rad(b.Lat - a.Lat)
	dLng := rad(b.Lng - a.Lng)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(a.Lat))*math.Cos(rad(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadius * math.Asin(math.Min(1, math.Sqrt(h)))
}
