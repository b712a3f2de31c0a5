package auth

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUnauthorized means no credential was presented.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden means a credential was presented but is invalid, expired or revoked.
	ErrForbidden = errors.New("forbidden")
	// ErrProviderUnavailable means the identity provider or revocation list
	// could not be reached in time.
	ErrProviderUnavailable = errors.New("identity provider unavailable")

	// ErrInvalidToken is returned by verifiers for tokens that fail verification.
	ErrInvalidToken = errors.New("invalid token")
)

// Identity is what a verifier learns from a valid token.
type Identity struct {
	UID      string
	IssuedAt time.Time
}

// Verifier checks a raw bearer token with the identity provider.
type Verifier interface {
	Verify(ctx context.Context, raw string) (Identity, error)
}
