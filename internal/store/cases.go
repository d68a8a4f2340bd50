package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"casework-backend/internal/dbx"
	"casework-backend/internal/models"
)

func (s *Store) CreateCase(ctx context.Context, c *models.Case) (*models.Case, error) {
	filesJSON, err := encodeFiles(c.Files)
	if err != nil {
		return nil, err
	}

	c.Status = models.CaseStatusOpen
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO cases (user_id, title, theme, description, cover, files, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, c.UserID, c.Title, c.Theme, c.Description, c.Cover, filesJSON, c.Status).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create case: %w", err)
	}

	return c, nil
}

// ListCases returns all cases, newest first, optionally filtered by owner.
func (s *Store) ListCases(ctx context.Context, userID *int64) ([]models.Case, error) {
	query := `
		SELECT id, user_id, title, theme, description, cover, files, status, created_at
		FROM cases`
	args := []any{}
	if userID != nil {
		query += ` WHERE user_id = $1`
		args = append(args, *userID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	defer rows.Close()

	var cases []models.Case
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		cases = append(cases, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}

	return cases, nil
}

func (s *Store) GetCase(ctx context.Context, id int64) (*models.Case, error) {
	return getCase(ctx, s.db, id)
}

func getCase(ctx context.Context, q dbx.DBTX, id int64) (*models.Case, error) {
	row := q.QueryRowContext(ctx, `
		SELECT id, user_id, title, theme, description, cover, files, status, created_at
		FROM cases
		WHERE id = $1
	`, id)

	c, err := scanCase(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCase(row rowScanner) (*models.Case, error) {
	var c models.Case
	var rawFiles sql.NullString
	err := row.Scan(
		&c.ID, &c.UserID, &c.Title, &c.Theme, &c.Description,
		&c.Cover, &rawFiles, &c.Status, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan case: %w", err)
	}

	c.Files, err = decodeFiles(rawFiles)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
