package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRevocationUnsupported is returned by Revoke when no revocation backend
// is configured.
var ErrRevocationUnsupported = errors.New("identity revocation not configured")

// Revocations records identities whose previously issued tokens must no
// longer be accepted.
type Revocations interface {
	// Revoke invalidates every token issued to uid before now.
	Revoke(ctx context.Context, uid string) error
	// RevokedSince returns the revocation instant for uid, if any.
	RevokedSince(ctx context.Context, uid string) (time.Time, bool, error)
}

// RedisRevocations keeps one key per revoked uid holding the unix second of
// revocation. Keys expire after ttl, which should cover the longest token
// lifetime; zero keeps them forever.
type RedisRevocations struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

var _ Revocations = (*RedisRevocations)(nil)

// NewRedisRevocations parses a redis:// URL and checks the server answers.
func NewRedisRevocations(ctx context.Context, redisURL string, ttl time.Duration) (*RedisRevocations, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisRevocations{client: client, ttl: ttl, now: time.Now}, nil
}

// Close releases the redis connection pool.
func (r *RedisRevocations) Close() error {
	return r.client.Close()
}

// Revoke implements Revocations.
func (r *RedisRevocations) Revoke(ctx context.Context, uid string) error {
	if err := r.client.Set(ctx, revocationKey(uid), r.now().Unix(), r.ttl).Err(); err != nil {
		return fmt.Errorf("store revocation: %w", err)
	}
	return nil
}

// RevokedSince implements Revocations.
func (r *RedisRevocations) RevokedSince(ctx context.Context, uid string) (time.Time, bool, error) {
	val, err := r.client.Get(ctx, revocationKey(uid)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("load revocation: %w", err)
	}
	secs, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse revocation %q: %w", val, err)
	}
	return time.Unix(secs, 0), true, nil
}

func revocationKey(uid string) string {
	return "packpoint:revoked:" + uid
}

// NopRevocations never reports a revocation and refuses to record one.
type NopRevocations struct{}

var _ Revocations = NopRevocations{}

// Revoke implements Revocations.
func (NopRevocations) Revoke(context.Context, string) error {
	return ErrRevocationUnsupported
}

// RevokedSince implements Revocations.
func (NopRevocations) RevokedSince(context.Context, string) (time.Time, bool, error) {
	return time.Time{}, false, nil
}
