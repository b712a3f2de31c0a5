package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hongminglow/packpoint-be/internal/models"
	"github.com/hongminglow/packpoint-be/internal/storage"
)

const userColumns = `id, external_id, phone_number, created_at`

// ListUsers returns every user.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	users, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.User])
	if err != nil {
		return nil, fmt.Errorf("scan users: %w", err)
	}
	return users, nil
}

// GetUser fetches a user by internal id.
func (s *Store) GetUser(ctx context.Context, id int64) (models.User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1;`, id)
	return scanUser(row)
}

// FindByExternalID looks a user up by verified identity. Absence is not an error.
func (s *Store) FindByExternalID(ctx context.Context, externalID string) (models.User, bool, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE external_id = $1;`, externalID)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, false, nil
		}
		return models.User{}, false, err
	}
	return user, true, nil
}

// CreateUser inserts a user bound to an external identity.
func (s *Store) CreateUser(ctx context.Context, phoneNumber, externalID string) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (phone_number, external_id) VALUES ($1, $2) RETURNING id;`,
		phoneNumber, externalID,
	).Scan(&id)
	if err != nil {
		return 0, mapError(err)
	}
	return id, nil
}

// UpdateUser changes a user's phone number.
func (s *Store) UpdateUser(ctx context.Context, id int64, phoneNumber string) error {
	tag, err := s.pool.Exec(ctx, `UPDATE users SET phone_number = $1 WHERE id = $2;`, phoneNumber, id)
	if err != nil {
		return mapError(err)
	}
	return requireRows(tag)
}

// DeleteUserByExternalID removes the account bound to an external identity.
// Saved points cascade with it.
func (s *Store) DeleteUserByExternalID(ctx context.Context, externalID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE external_id = $1;`, externalID)
	if err != nil {
		return mapError(err)
	}
	return requireRows(tag)
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.ExternalID, &user.PhoneNumber, &user.CreatedAt); err != nil {
		return models.User{}, mapError(err)
	}
	return user, nil
}
