package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hongminglow/packpoint-be/internal/auth"
	"github.com/hongminglow/packpoint-be/internal/config"
	"github.com/hongminglow/packpoint-be/internal/health"
	"github.com/hongminglow/packpoint-be/internal/logging"
	"github.com/hongminglow/packpoint-be/internal/media"
	"github.com/hongminglow/packpoint-be/internal/server"
	"github.com/hongminglow/packpoint-be/internal/service"
	postgres "github.com/hongminglow/packpoint-be/internal/storage/postgres"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logging.Configure(logging.Config{Level: cfg.LogLevel, JSON: cfg.LogJSON})
	log := logging.GetLogger("main")
	if envErr != nil {
		log.Info("no .env file found; relying on existing environment")
	}

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer store.Close()

	verifier, err := newVerifier(ctx, cfg)
	if err != nil {
		return err
	}

	var revocations auth.Revocations
	if cfg.RedisURL != "" {
		redisRevocations, err := auth.NewRedisRevocations(ctx, cfg.RedisURL, revocationTTL(cfg))
		if err != nil {
			return fmt.Errorf("init revocations: %w", err)
		}
		defer redisRevocations.Close()
		revocations = redisRevocations
	} else {
		log.Warn("REDIS_URL not set; identity revocation disabled")
	}
	resolver := auth.NewResolver(verifier, revocations, cfg.IdentityTimeout)

	blobs, err := media.NewFileSystemStore(cfg.BlobBaseDir, cfg.BlobPublicURL)
	if err != nil {
		return fmt.Errorf("init blob store: %w", err)
	}
	attacher := media.NewAttacher(blobs, cfg.MediaMaxBytes)

	srv := server.New(cfg, server.Dependencies{
		Points:      service.NewPointService(store, attacher),
		SavedPoints: service.NewSavedPointService(store),
		Users:       service.NewUserService(store, resolver),
		Identity:    resolver,
		Blobs:       blobs,
		Store:       store,
	})

	errCh := make(chan error, 2)
	go func() {
		log.Info("packpoint backend listening", "addr", cfg.HTTPAddress(), "auth_provider", cfg.AuthProvider)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	monitor := health.NewMonitor(store, cfg.DBCheckInterval, cfg.DBCheckTimeout, cfg.DBCheckMaxFailures)
	go func() {
		if err := monitor.Run(ctx); err != nil {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case runErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown error", "error", err)
	}
	return runErr
}

func newVerifier(ctx context.Context, cfg config.Config) (auth.Verifier, error) {
	switch cfg.AuthProvider {
	case config.ProviderOIDC:
		verifier, err := auth.NewOIDCVerifier(ctx, cfg.OIDCIssuerURL, cfg.OIDCClientID)
		if err != nil {
			return nil, fmt.Errorf("init identity provider: %w", err)
		}
		return verifier, nil
	default:
		return auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL), nil
	}
}

// Revocation markers only need to outlive the tokens they cancel. OIDC
// issuers such as Firebase cap ID tokens at one hour.
func revocationTTL(cfg config.Config) time.Duration {
	if cfg.AuthProvider == config.ProviderOIDC {
		return time.Hour + time.Minute
	}
	return cfg.JWTTTL + time.Minute
}
