package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hongminglow/packpoint-be/internal/storage"
)

// Ensure Store satisfies the storage interfaces at compile time.
var (
	_ storage.PointStore      = (*Store)(nil)
	_ storage.SavedPointStore = (*Store)(nil)
	_ storage.UserStore       = (*Store)(nil)
	_ storage.Pinger          = (*Store)(nil)
)

// Postgres error codes mapped onto storage sentinels.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// Store provides Postgres/PostGIS-backed persistence for points, saved
// points and users. It is safe for concurrent use.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store over a fresh connection pool and runs migrations.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ping checks connectivity with a round trip.
func (s *Store) Ping(ctx context.Context) error {
	var one int
	if err := s.pool.QueryRow(ctx, `SELECT 1`).Scan(&one); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS postgis;`,
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			external_id TEXT UNIQUE NOT NULL,
			phone_number TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS points (
			id BIGSERIAL PRIMARY KEY,
			owner TEXT NOT NULL,
			name TEXT NOT NULL CHECK (name <> ''),
			description TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			rating SMALLINT NOT NULL,
			noise_level SMALLINT NOT NULL,
			busy_level SMALLINT NOT NULL,
			wifi BOOLEAN NOT NULL,
			amenities TEXT[] NOT NULL DEFAULT '{}',
			location GEOGRAPHY(Point, 4326) NOT NULL,
			image_url TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS points_location_gix ON points USING GIST (location);`,
		`CREATE INDEX IF NOT EXISTS points_owner_idx ON points (owner);`,
		`CREATE TABLE IF NOT EXISTS saved_points (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			point_id BIGINT NOT NULL REFERENCES points(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT saved_points_user_point_unique UNIQUE (user_id, point_id)
		);`,
		`CREATE INDEX IF NOT EXISTS saved_points_user_idx ON saved_points (user_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// mapError translates driver errors into storage sentinels and passes
// everything else through unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%w: %s", storage.ErrAlreadyExists, pgErr.ConstraintName)
		case codeForeignKeyViolation:
			return fmt.Errorf("%w: %s", storage.ErrNotFound, pgErr.ConstraintName)
		}
	}
	return err
}

// requireRows turns a zero-row command into ErrNotFound.
func requireRows(tag pgconn.CommandTag) error {
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
