package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const bearerPrefix = "Bearer "

// Resolver turns an Authorization header into a verified external uid.
// Every call re-verifies with the provider; nothing is cached between requests.
type Resolver struct {
	verifier    Verifier
	revocations Revocations
	timeout     time.Duration
}

// NewResolver builds a resolver. A nil revocations disables revocation checks;
// a non-positive timeout leaves the caller's deadline as the only bound.
func NewResolver(verifier Verifier, revocations Revocations, timeout time.Duration) *Resolver {
	if revocations == nil {
		revocations = NopRevocations{}
	}
	return &Resolver{verifier: verifier, revocations: revocations, timeout: timeout}
}

// Resolve classifies the credential: absent yields ErrUnauthorized, present
// but invalid, expired or revoked yields ErrForbidden, and provider I/O
// failure yields ErrProviderUnavailable.
func (r *Resolver) Resolve(ctx context.Context, authorization string) (string, error) {
	raw, present := bearerToken(authorization)
	if !present {
		return "", ErrUnauthorized
	}
	if raw == "" {
		return "", fmt.Errorf("%w: malformed authorization header", ErrForbidden)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	identity, err := r.verifier.Verify(ctx, raw)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) {
			return "", fmt.Errorf("%w: %w", ErrForbidden, err)
		}
		return "", fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}

	since, revoked, err := r.revocations.RevokedSince(ctx, identity.UID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
	// iat and the revocation instant both have one-second resolution, so a
	// token issued in the revocation second is treated as revoked.
	if revoked && !identity.IssuedAt.After(since) {
		return "", fmt.Errorf("%w: token revoked", ErrForbidden)
	}

	return identity.UID, nil
}

// Revoke asks the provider side to stop honouring tokens for uid.
func (r *Resolver) Revoke(ctx context.Context, uid string) error {
	return r.revocations.Revoke(ctx, uid)
}

// bearerToken extracts the token from an Authorization header. present is
// false only when the header is empty.
func bearerToken(header string) (token string, present bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", true
	}
	return strings.TrimSpace(header[len(bearerPrefix):]), true
}
