package service

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hongminglow/packpoint-be/internal/models"
	"github.com/hongminglow/packpoint-be/internal/storage"
)

type fakePointStore struct {
	mu        sync.Mutex
	points    map[int64]models.Point
	nextID    int64
	createErr error
	updateErr error
	nearby    []models.Point
	radius    float64
}

func newFakePointStore() *fakePointStore {
	return &fakePointStore{points: map[int64]models.Point{}}
}

func (s *fakePointStore) ListPoints(context.Context) ([]models.Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Point, 0, len(s.points))
	for _, p := range s.points {
		out = append(out, p)
	}
	return out, nil
}

func (s *fakePointStore) ListPointsByOwner(_ context.Context, owner string) ([]models.Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Point{}
	for _, p := range s.points {
		if p.Owner == owner {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakePointStore) GetPoint(_ context.Context, id int64) (models.Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.points[id]
	if !ok {
		return models.Point{}, storage.ErrNotFound
	}
	return p, nil
}

func (s *fakePointStore) FindNearby(_ context.Context, _ models.Location, radius float64) ([]models.Point, error) {
	s.radius = radius
	return s.nearby, nil
}

func (s *fakePointStore) CreatePoint(_ context.Context, fields models.PointFields, owner string, imageURL *string) (int64, error) {
	if s.createErr != nil {
		return 0, s.createErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.points[s.nextID] = pointFrom(s.nextID, fields, owner, imageURL)
	return s.nextID, nil
}

func (s *fakePointStore) UpdatePoint(_ context.Context, id int64, fields models.PointFields, imageURL *string) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.points[id]
	if !ok {
		return storage.ErrNotFound
	}
	if imageURL == nil {
		imageURL = current.ImageURL
	}
	s.points[id] = pointFrom(id, fields, current.Owner, imageURL)
	return nil
}

func (s *fakePointStore) DeletePoint(_ context.Context, id int64) (*string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.points[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	delete(s.points, id)
	return current.ImageURL, nil
}

func pointFrom(id int64, f models.PointFields, owner string, imageURL *string) models.Point {
	return models.Point{
		ID: id, Owner: owner, Name: f.Name, Description: f.Description, Address: f.Address,
		Rating: f.Rating, NoiseLevel: f.NoiseLevel, BusyLevel: f.BusyLevel, Wifi: f.Wifi,
		Amenities: f.Amenities, Location: f.Location, ImageURL: imageURL,
	}
}

type fakeBlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: map[string][]byte{}}
}

func (s *fakeBlobStore) Put(_ context.Context, key, _ string, data []byte) (string, error) {
	if s.putErr != nil {
		return "", s.putErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return "https://cdn.test/" + key, nil
}

func (s *fakeBlobStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *fakeBlobStore) KeyFromURL(url string) (string, bool) {
	return strings.CutPrefix(url, "https://cdn.test/")
}

func (s *fakeBlobStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

type fakeUserStore struct {
	users     map[int64]models.User
	deleteErr error
	findErr   error
}

func (s *fakeUserStore) ListUsers(context.Context) ([]models.User, error) {
	out := []models.User{}
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *fakeUserStore) GetUser(_ context.Context, id int64) (models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return u, nil
}

func (s *fakeUserStore) FindByExternalID(_ context.Context, externalID string) (models.User, bool, error) {
	if s.findErr != nil {
		return models.User{}, false, s.findErr
	}
	for _, u := range s.users {
		if u.ExternalID == externalID {
			return u, true, nil
		}
	}
	return models.User{}, false, nil
}

func (s *fakeUserStore) CreateUser(_ context.Context, phone, externalID string) (int64, error) {
	for _, u := range s.users {
		if u.ExternalID == externalID {
			return 0, storage.ErrAlreadyExists
		}
	}
	id := int64(len(s.users) + 1)
	s.users[id] = models.User{ID: id, ExternalID: externalID, PhoneNumber: phone}
	return id, nil
}

func (s *fakeUserStore) UpdateUser(_ context.Context, id int64, phone string) error {
	u, ok := s.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	u.PhoneNumber = phone
	s.users[id] = u
	return nil
}

func (s *fakeUserStore) DeleteUserByExternalID(_ context.Context, externalID string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	for id, u := range s.users {
		if u.ExternalID == externalID {
			delete(s.users, id)
			return nil
		}
	}
	return storage.ErrNotFound
}

type fakeRevoker struct {
	revoked []string
	err     error
}

func (r *fakeRevoker) Revoke(_ context.Context, uid string) error {
	r.revoked = append(r.revoked, uid)
	return r.err
}
