package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"casework-backend/internal/dbx"
	"casework-backend/internal/models"
)

func (s *Store) CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error) {
	user := &models.User{Email: email, Password: passwordHash}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, email, passwordHash).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isPQError(err, pqUniqueViolation) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return getUserBy(ctx, s.db, "email = $1", email)
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return getUserBy(ctx, s.db, "id = $1", id)
}

func getUserBy(ctx context.Context, q dbx.DBTX, where string, arg any) (*models.User, error) {
	var user models.User
	err := q.QueryRowContext(ctx, `
		SELECT id, email, password, first_name, last_name, photo, description, created_at
		FROM users
		WHERE `+where, arg).Scan(
		&user.ID, &user.Email, &user.Password,
		&user.FirstName, &user.LastName, &user.Photo, &user.Description, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// UpdateUser applies a partial profile update. Nil fields keep their stored
// values.
func (s *Store) UpdateUser(ctx context.Context, id int64, req models.UpdateProfileRequest) (*models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx, `
		UPDATE users
		SET first_name  = COALESCE($2, first_name),
		    last_name   = COALESCE($3, last_name),
		    description = COALESCE($4, description),
		    photo       = COALESCE($5, photo)
		WHERE id = $1
		RETURNING id, email, password, first_name, last_name, photo, description, created_at
	`, id, req.FirstName, req.LastName, req.Description, req.Photo).Scan(
		&user.ID, &user.Email, &user.Password,
		&user.FirstName, &user.LastName, &user.Photo, &user.Description, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &user, nil
}
