package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hongminglow/packpoint-be/internal/http/respond"
	"github.com/hongminglow/packpoint-be/internal/logging"
	"github.com/hongminglow/packpoint-be/internal/models"
	"github.com/hongminglow/packpoint-be/internal/models/dto"
	"github.com/hongminglow/packpoint-be/internal/requestctx"
)

const maxUserBody = 64 << 10

// UserService is the account behavior the handler depends on.
type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id int64) (models.User, error)
	Exists(ctx context.Context, uid string) (bool, error)
	Create(ctx context.Context, phoneNumber, uid string) (int64, error)
	Update(ctx context.Context, id int64, phoneNumber string) error
	Delete(ctx context.Context, uid string) error
}

// UsersHandler serves /api/users.
type UsersHandler struct {
	users UserService
	log   logging.Logger
}

// NewUsersHandler creates the handler.
func NewUsersHandler(users UserService) *UsersHandler {
	return &UsersHandler{users: users, log: logging.GetLogger("http.users")}
}

// Register attaches user routes.
func (h *UsersHandler) Register(mux *http.ServeMux, protect func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /api/users", h.handleList)
	mux.Handle("GET /api/users/exists", protect(http.HandlerFunc(h.handleExists)))
	mux.HandleFunc("GET /api/users/{userId}", h.handleGet)
	mux.Handle("POST /api/users", protect(http.HandlerFunc(h.handleCreate)))
	mux.Handle("PUT /api/users/{userId}", protect(http.HandlerFunc(h.handleUpdate)))
	mux.Handle("DELETE /api/users/me", protect(http.HandlerFunc(h.handleDelete)))
}

func (h *UsersHandler) handleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, r, h.log, err, "failed to list users")
		return
	}
	respond.JSON(w, http.StatusOK, "users retrieved", users)
}

func (h *UsersHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := dto.ParseID("userId", r.PathValue("userId"))
	if err != nil {
		writeError(w, r, h.log, err, "invalid user id")
		return
	}
	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err, "failed to get user")
		return
	}
	respond.JSON(w, http.StatusOK, "user retrieved", user)
}

func (h *UsersHandler) handleExists(w http.ResponseWriter, r *http.Request) {
	uid, _ := requestctx.UIDFromContext(r.Context())
	exists, err := h.users.Exists(r.Context(), uid)
	if err != nil {
		writeError(w, r, h.log, err, "failed to look up user")
		return
	}
	respond.JSON(w, http.StatusOK, "user lookup complete", dto.ExistsResponse{Exists: exists})
}

func (h *UsersHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	phone, err := readUserRequest(w, r)
	if err != nil {
		writeError(w, r, h.log, err, "invalid user")
		return
	}
	uid, _ := requestctx.UIDFromContext(r.Context())
	id, err := h.users.Create(r.Context(), phone, uid)
	if err != nil {
		writeError(w, r, h.log, err, "failed to create user")
		return
	}
	respond.JSON(w, http.StatusCreated, "user created", dto.CreatedResponse{ID: id})
}

func (h *UsersHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := dto.ParseID("userId", r.PathValue("userId"))
	if err != nil {
		writeError(w, r, h.log, err, "invalid user id")
		return
	}
	phone, err := readUserRequest(w, r)
	if err != nil {
		writeError(w, r, h.log, err, "invalid user")
		return
	}
	if err := h.users.Update(r.Context(), id, phone); err != nil {
		writeError(w, r, h.log, err, "failed to update user")
		return
	}
	respond.JSON(w, http.StatusOK, "user updated", nil)
}

func (h *UsersHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	uid, _ := requestctx.UIDFromContext(r.Context())
	if err := h.users.Delete(r.Context(), uid); err != nil {
		writeError(w, r, h.log, err, "failed to delete user")
		return
	}
	respond.JSON(w, http.StatusOK, "user deleted", nil)
}

func readUserRequest(w http.ResponseWriter, r *http.Request) (string, error) {
	var req dto.UserRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUserBody)).Decode(&req); err != nil {
		return "", dto.Invalid("body", "must be a JSON object")
	}
	return req.Normalize()
}
