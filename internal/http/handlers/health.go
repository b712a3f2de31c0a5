package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/hongminglow/packpoint-be/internal/http/respond"
	"github.com/hongminglow/packpoint-be/internal/logging"
	"github.com/hongminglow/packpoint-be/internal/storage"
)

const healthPingTimeout = 2 * time.Second

// HealthHandler returns uptime and store reachability.
type HealthHandler struct {
	startedAt time.Time
	store     storage.Pinger
	log       logging.Logger
}

// NewHealthHandler creates a health endpoint handler.
func NewHealthHandler(startedAt time.Time, store storage.Pinger) *HealthHandler {
	return &HealthHandler{startedAt: startedAt, store: store, log: logging.GetLogger("http.health")}
}

// Register wires the handler into a ServeMux.
func (h *HealthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.handle)
}

func (h *HealthHandler) handle(w http.ResponseWriter, r *http.Request) {
	status, code := "ok", http.StatusOK

	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		h.log.WarnContext(r.Context(), "store ping failed", "error", err)
		status, code = "degraded", http.StatusServiceUnavailable
	}

	respond.JSON(w, code, status, map[string]string{
		"status": status,
		"uptime": time.Since(h.startedAt).Truncate(time.Second).String(),
	})
}
