package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/hongminglow/packpoint-be/internal/auth"
	"github.com/hongminglow/packpoint-be/internal/http/respond"
	"github.com/hongminglow/packpoint-be/internal/logging"
	"github.com/hongminglow/packpoint-be/internal/requestctx"
)

// IdentityResolver resolves an Authorization header to a verified uid.
type IdentityResolver interface {
	Resolve(ctx context.Context, authorization string) (string, error)
}

var _ IdentityResolver = (*auth.Resolver)(nil)

// RequireIdentity rejects requests without a verified bearer token and puts
// the uid on the context of those it lets through. A missing token is 401,
// a rejected one 403, and an unreachable provider 502.
func RequireIdentity(resolver IdentityResolver, log logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, err := resolver.Resolve(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrUnauthorized):
				respond.Error(w, http.StatusUnauthorized, "missing bearer token")
			case errors.Is(err, auth.ErrForbidden):
				log.InfoContext(r.Context(), "token rejected", "error", err)
				respond.Error(w, http.StatusForbidden, "invalid or expired token")
			default:
				log.ErrorContext(r.Context(), "resolve identity failed", "error", err)
				respond.Error(w, http.StatusBadGateway, "identity provider unavailable")
			}
			return
		}
		next.ServeHTTP(w, r.WithContext(requestctx.WithUID(r.Context(), uid)))
	})
}
