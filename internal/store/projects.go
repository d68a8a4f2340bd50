package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"casework-backend/internal/models"
)

// ListProjects returns completed projects, newest first, optionally filtered
// by the original case owner.
func (s *Store) ListProjects(ctx context.Context, userID *int64) ([]models.Project, error) {
	query := `
		SELECT id, case_id, user_id, title, theme, description, cover, files,
		       status, executor_email, created_at
		FROM projects`
	args := []any{}
	if userID != nil {
		query += ` WHERE user_id = $1`
		args = append(args, *userID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, nil
}

func (s *Store) GetProject(ctx context.Context, id int64) (*models.Project, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, case_id, user_id, title, theme, description, cover, files,
		       status, executor_email, created_at
		FROM projects
		WHERE id = $1
	`, id)

	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func scanProject(row rowScanner) (*models.Project, error) {
	var p models.Project
	var rawFiles sql.NullString
	err := row.Scan(
		&p.ID, &p.CaseID, &p.UserID, &p.Title, &p.Theme, &p.Description,
		&p.Cover, &rawFiles, &p.Status, &p.ExecutorEmail, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan project: %w", err)
	}

	p.Files, err = decodeFiles(rawFiles)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
