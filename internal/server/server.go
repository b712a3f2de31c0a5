package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/hongminglow/packpoint-be/internal/config"
	"github.com/hongminglow/packpoint-be/internal/http/handlers"
	"github.com/hongminglow/packpoint-be/internal/logging"
	"github.com/hongminglow/packpoint-be/internal/media"
	"github.com/hongminglow/packpoint-be/internal/middleware"
	"github.com/hongminglow/packpoint-be/internal/storage"
)

// Dependencies are the services the HTTP surface is built from.
type Dependencies struct {
	Points      handlers.PointService
	SavedPoints handlers.SavedPointService
	Users       handlers.UserService
	Identity    middleware.IdentityResolver
	Blobs       media.BlobOpener
	Store       storage.Pinger
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, deps Dependencies) *Server {
	log := logging.GetLogger("http.server")

	mux := http.NewServeMux()
	protect := func(next http.Handler) http.Handler {
		return middleware.RequireIdentity(deps.Identity, logging.GetLogger("http.auth"), next)
	}

	handlers.NewHealthHandler(time.Now(), deps.Store).Register(mux)
	handlers.NewMediaHandler(deps.Blobs).Register(mux)
	handlers.NewPointsHandler(deps.Points, cfg.MediaMaxBytes).Register(mux, protect)
	handlers.NewSavedPointsHandler(deps.SavedPoints).Register(mux, protect)
	handlers.NewUsersHandler(deps.Users).Register(mux, protect)

	var handler http.Handler = mux
	handler = middleware.Rescue(log, handler)
	handler = middleware.Logging(log, handler)
	handler = middleware.Tracing(handler)
	handler = middleware.CORS(cfg.CORSOrigins, handler)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          logging.StdLogger(log, slog.LevelWarn),
	}

	return &Server{inner: httpServer}
}

// Handler exposes the fully wrapped handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.inner.Handler
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
