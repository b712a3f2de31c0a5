// Package service composes the stores, the media attacher and the identity
// revoker into the operations the HTTP layer exposes.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hongminglow/packpoint-be/internal/auth"
	"github.com/hongminglow/packpoint-be/internal/media"
	"github.com/hongminglow/packpoint-be/internal/models/dto"
	"github.com/hongminglow/packpoint-be/internal/storage"
)

// ErrUpstream marks store, blob store or identity provider failures.
var ErrUpstream = errors.New("upstream failure")

// classified errors pass through untouched; everything else is an upstream
// I/O failure.
func upstream(op string, err error) error {
	if err == nil {
		return nil
	}
	var validation *dto.ValidationError
	switch {
	case errors.As(err, &validation),
		errors.Is(err, storage.ErrNotFound),
		errors.Is(err, storage.ErrAlreadyExists),
		errors.Is(err, media.ErrTooLarge),
		errors.Is(err, media.ErrUnsupportedType),
		errors.Is(err, media.ErrEmpty),
		errors.Is(err, context.Canceled):
		return fmt.Errorf("%s: %w", op, err)
	case errors.Is(err, ErrUpstream):
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, ErrUpstream, err)
}

// Revoker is the companion action of user deletion.
type Revoker interface {
	Revoke(ctx context.Context, uid string) error
}

var _ Revoker = (*auth.Resolver)(nil)
