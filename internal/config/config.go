package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Identity providers understood by AuthProvider.
const (
	ProviderJWT  = "jwt"
	ProviderOIDC = "oidc"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port        string
	DatabaseURL string
	CORSOrigins []string

	AuthProvider    string
	JWTSecret       string
	JWTIssuer       string
	JWTTTL          time.Duration
	OIDCIssuerURL   string
	OIDCClientID    string
	IdentityTimeout time.Duration
	RedisURL        string

	BlobBaseDir   string
	BlobPublicURL string
	MediaMaxBytes int64

	DBCheckInterval    time.Duration
	DBCheckTimeout     time.Duration
	DBCheckMaxFailures int

	LogLevel string
	LogJSON  bool
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Port:          fallback(os.Getenv("PORT"), "8080"),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		CORSOrigins:   parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		AuthProvider:  strings.ToLower(fallback(os.Getenv("AUTH_PROVIDER"), ProviderJWT)),
		JWTSecret:     strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:     fallback(os.Getenv("JWT_ISSUER"), "packpoint"),
		OIDCIssuerURL: strings.TrimSpace(os.Getenv("OIDC_ISSUER_URL")),
		OIDCClientID:  strings.TrimSpace(os.Getenv("OIDC_CLIENT_ID")),
		RedisURL:      strings.TrimSpace(os.Getenv("REDIS_URL")),
		BlobBaseDir:   fallback(os.Getenv("BLOB_BASEDIR"), "var/storage/blob"),
		LogLevel:      strings.ToLower(fallback(os.Getenv("LOG_LEVEL"), "info")),
		LogJSON:       parseBool(os.Getenv("LOG_JSON")),
	}
	cfg.BlobPublicURL = strings.TrimRight(fallback(os.Getenv("BLOB_PUBLIC_URL"), "http://localhost:"+cfg.Port+"/media"), "/")

	cfg.JWTTTL = time.Duration(positiveInt(os.Getenv("JWT_TTL_MINUTES"), 60)) * time.Minute
	cfg.IdentityTimeout = time.Duration(positiveInt(os.Getenv("IDENTITY_TIMEOUT_SECONDS"), 5)) * time.Second
	cfg.MediaMaxBytes = int64(positiveInt(os.Getenv("MEDIA_MAX_BYTES"), 20<<20))
	cfg.DBCheckInterval = time.Duration(positiveInt(os.Getenv("DB_CHECK_INTERVAL_SECONDS"), 60)) * time.Second
	cfg.DBCheckTimeout = time.Duration(positiveInt(os.Getenv("DB_CHECK_TIMEOUT_SECONDS"), 10)) * time.Second
	cfg.DBCheckMaxFailures = positiveInt(os.Getenv("DB_CHECK_MAX_FAILURES"), 5)

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	switch cfg.AuthProvider {
	case ProviderJWT:
		if cfg.JWTSecret == "" {
			return Config{}, errors.New("JWT_SECRET is required")
		}
	case ProviderOIDC:
		if cfg.OIDCIssuerURL == "" || cfg.OIDCClientID == "" {
			return Config{}, errors.New("OIDC_ISSUER_URL and OIDC_CLIENT_ID are required")
		}
	default:
		return Config{}, fmt.Errorf("unknown AUTH_PROVIDER %q", cfg.AuthProvider)
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func positiveInt(value string, def int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && n > 0 {
		return n
	}
	return def
}

func parseBool(value string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	return err == nil && b
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
