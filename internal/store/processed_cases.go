package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"casework-backend/internal/dbx"
	"casework-backend/internal/models"
)

// ListProcessedCases returns all in-flight assignments, newest first,
// optionally filtered by executor.
func (s *Store) ListProcessedCases(ctx context.Context, executorID *int64) ([]models.ProcessedCase, error) {
	query := `
		SELECT id, case_id, user_id, title, theme, description, cover, files,
		       status, executor_id, executor_email, created_at
		FROM processed_cases`
	args := []any{}
	if executorID != nil {
		query += ` WHERE executor_id = $1`
		args = append(args, *executorID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list processed cases: %w", err)
	}
	defer rows.Close()

	var items []models.ProcessedCase
	for rows.Next() {
		pc, err := scanProcessedCase(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *pc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list processed cases: %w", err)
	}

	return items, nil
}

func (s *Store) GetProcessedCase(ctx context.Context, id int64) (*models.ProcessedCase, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, case_id, user_id, title, theme, description, cover, files,
		       status, executor_id, executor_email, created_at
		FROM processed_cases
		WHERE id = $1
	`, id)

	pc, err := scanProcessedCase(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return pc, nil
}

// AppendProcessedCaseFiles appends upload paths to the stored file list and
// returns the full updated list. The read-modify-write runs in a transaction
// so concurrent appends cannot drop paths.
func (s *Store) AppendProcessedCaseFiles(ctx context.Context, id int64, paths []string) ([]string, error) {
	var updated []string
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var rawFiles sql.NullString
		err := tx.QueryRowContext(ctx, `
			SELECT files FROM processed_cases
			WHERE id = $1
			FOR UPDATE
		`, id).Scan(&rawFiles)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to get processed case files: %w", err)
		}

		files, err := decodeFiles(rawFiles)
		if err != nil {
			return err
		}
		files = append(files, paths...)

		filesJSON, err := encodeFiles(files)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE processed_cases SET files = $2
			WHERE id = $1
		`, id, filesJSON); err != nil {
			return fmt.Errorf("failed to update processed case files: %w", err)
		}

		updated = files
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func scanProcessedCase(row rowScanner) (*models.ProcessedCase, error) {
	var pc models.ProcessedCase
	var rawFiles sql.NullString
	err := row.Scan(
		&pc.ID, &pc.CaseID, &pc.UserID, &pc.Title, &pc.Theme, &pc.Description,
		&pc.Cover, &rawFiles, &pc.Status, &pc.ExecutorID, &pc.ExecutorEmail, &pc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan processed case: %w", err)
	}

	pc.Files, err = decodeFiles(rawFiles)
	if err != nil {
		return nil, err
	}
	return &pc, nil
}
