package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/packpoint-be/internal/auth"
	"github.com/hongminglow/packpoint-be/internal/config"
	"github.com/hongminglow/packpoint-be/internal/media"
	"github.com/hongminglow/packpoint-be/internal/middleware"
	"github.com/hongminglow/packpoint-be/internal/models"
	"github.com/hongminglow/packpoint-be/internal/service"
)

type memoryPoints struct {
	points []models.Point
}

func (m *memoryPoints) ListPoints(context.Context) ([]models.Point, error) { return m.points, nil }

func (m *memoryPoints) ListPointsByOwner(_ context.Context, owner string) ([]models.Point, error) {
	out := []models.Point{}
	for _, p := range m.points {
		if p.Owner == owner {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memoryPoints) GetPoint(context.Context, int64) (models.Point, error) {
	return models.Point{}, nil
}

func (m *memoryPoints) FindNearby(context.Context, models.Location, float64) ([]models.Point, error) {
	return m.points, nil
}

func (m *memoryPoints) CreatePoint(context.Context, models.PointFields, string, *string) (int64, error) {
	return 1, nil
}

func (m *memoryPoints) UpdatePoint(context.Context, int64, models.PointFields, *string) error {
	return nil
}

func (m *memoryPoints) DeletePoint(context.Context, int64) (*string, error) { return nil, nil }

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func newTestServer(t *testing.T) (http.Handler, *auth.TokenManager) {
	t.Helper()
	tokens := auth.NewTokenManager("test-secret", "packpoint", time.Hour)
	blobs, err := media.NewFileSystemStore(t.TempDir(), "http://localhost/media")
	require.NoError(t, err)

	points := &memoryPoints{points: []models.Point{{ID: 1, Owner: "uid-1"}, {ID: 2, Owner: "uid-2"}}}
	resolver := auth.NewResolver(tokens, nil, time.Second)

	srv := New(config.Config{Port: "0", CORSOrigins: []string{"*"}, MediaMaxBytes: 1 << 20}, Dependencies{
		Points:   service.NewPointService(points, media.NewAttacher(blobs, 1<<20)),
		Identity: resolver,
		Blobs:    blobs,
		Store:    okPinger{},
	})
	return srv.Handler(), tokens
}

func TestRoutesAndMiddlewareChain(t *testing.T) {
	handler, tokens := newTestServer(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.TraceIDHeader))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/points/mine", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/points/mine", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	token, err := tokens.Generate("uid-1")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/points/mine", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"owner":"uid-1"`)
	assert.NotContains(t, rec.Body.String(), `"owner":"uid-2"`)
}

func TestPreflight(t *testing.T) {
	handler, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/points", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, middleware.TraceIDHeader, rec.Header().Get("Access-Control-Expose-Headers"))
}
