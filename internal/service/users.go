package service

import (
	"context"

	"github.com/hongminglow/packpoint-be/internal/logging"
	"github.com/hongminglow/packpoint-be/internal/models"
	"github.com/hongminglow/packpoint-be/internal/storage"
)

// UserService manages accounts keyed by internal id and external uid.
type UserService struct {
	store   storage.UserStore
	revoker Revoker
	log     logging.Logger
}

// NewUserService creates a user service. revoker may be nil.
func NewUserService(store storage.UserStore, revoker Revoker) *UserService {
	return &UserService{
		store:   store,
		revoker: revoker,
		log:     logging.GetLogger("service.users"),
	}
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.store.ListUsers(ctx)
	return users, upstream("list users", err)
}

// Get returns one user or storage.ErrNotFound.
func (s *UserService) Get(ctx context.Context, id int64) (models.User, error) {
	user, err := s.store.GetUser(ctx, id)
	return user, upstream("get user", err)
}

// Exists reports whether an account is linked to uid.
func (s *UserService) Exists(ctx context.Context, uid string) (bool, error) {
	_, ok, err := s.store.FindByExternalID(ctx, uid)
	if err != nil {
		return false, upstream("find user", err)
	}
	return ok, nil
}

// Create links a new account to uid.
func (s *UserService) Create(ctx context.Context, phoneNumber, uid string) (int64, error) {
	id, err := s.store.CreateUser(ctx, phoneNumber, uid)
	if err != nil {
		return 0, upstream("create user", err)
	}
	s.log.InfoContext(ctx, "user created", "user_id", id)
	return id, nil
}

// Update replaces the phone number of user id.
func (s *UserService) Update(ctx context.Context, id int64, phoneNumber string) error {
	return upstream("update user", s.store.UpdateUser(ctx, id, phoneNumber))
}

// Delete removes the account linked to uid, then asks the identity side to
// revoke uid. A failed revocation is logged and does not undo the deletion.
func (s *UserService) Delete(ctx context.Context, uid string) error {
	if err := s.store.DeleteUserByExternalID(ctx, uid); err != nil {
		return upstream("delete user", err)
	}
	s.log.InfoContext(ctx, "user deleted")

	if s.revoker == nil {
		return nil
	}
	if err := s.revoker.Revoke(context.WithoutCancel(ctx), uid); err != nil {
		s.log.WarnContext(ctx, "revoke identity failed", "error", err)
	}
	return nil
}
