package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"casework-backend/internal/dbx"
	"casework-backend/internal/models"
)

// AcceptCase assigns an open case to an executor. Within one transaction it
// reads the case, resolves the executor's email, inserts a processed case
// copying the case's fields, and flips the case status to "accepted". Any
// failure rolls everything back: a case is never left "accepted" without a
// processed case, and vice versa.
//
// The UNIQUE constraint on processed_cases.case_id closes the race between
// two concurrent accepts of the same case: the second insert fails and the
// whole transaction rolls back.
func (s *Store) AcceptCase(ctx context.Context, caseID, executorID int64) (*models.ProcessedCase, error) {
	var pc *models.ProcessedCase

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		c, err := getCase(ctx, tx, caseID)
		if err != nil {
			return err
		}
		if c.Status != models.CaseStatusOpen {
			return ErrCaseAlreadyAccepted
		}

		var executorEmail string
		err = tx.QueryRowContext(ctx, `
			SELECT email FROM users
			WHERE id = $1
		`, executorID).Scan(&executorEmail)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to get executor: %w", err)
		}

		filesJSON, err := encodeFiles(c.Files)
		if err != nil {
			return err
		}

		pc = &models.ProcessedCase{
			CaseID:        c.ID,
			UserID:        c.UserID,
			Title:         c.Title,
			Theme:         c.Theme,
			Description:   c.Description,
			Cover:         c.Cover,
			Files:         c.Files,
			Status:        models.ProcessedCaseStatusInProcess,
			ExecutorID:    executorID,
			ExecutorEmail: executorEmail,
		}
		err = tx.QueryRowContext(ctx, `
			INSERT INTO processed_cases
				(case_id, user_id, title, theme, description, cover, files, status, executor_id, executor_email)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id, created_at
		`, pc.CaseID, pc.UserID, pc.Title, pc.Theme, pc.Description, pc.Cover,
			filesJSON, pc.Status, pc.ExecutorID, pc.ExecutorEmail).
			Scan(&pc.ID, &pc.CreatedAt)
		if err != nil {
			if isPQError(err, pqUniqueViolation) {
				return ErrCaseAlreadyAccepted
			}
			return fmt.Errorf("failed to create processed case: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE cases SET status = $2
			WHERE id = $1
		`, caseID, models.CaseStatusAccepted); err != nil {
			return fmt.Errorf("failed to update case status: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return pc, nil
}

// CompleteCase closes a processed case on behalf of its executor. Within one
// transaction it reads the processed case scoped by id and executor (so a
// non-assigned caller sees not-found), inserts a project whose fields default
// to the processed case's values when not overridden, and deletes the
// processed case. Any failure rolls everything back.
func (s *Store) CompleteCase(ctx context.Context, processedCaseID, executorID int64, req models.CompleteCaseRequest) (*models.Project, error) {
	var project *models.Project

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		row := tx.QueryRowContext(ctx, `
			SELECT id, case_id, user_id, title, theme, description, cover, files,
			       status, executor_id, executor_email, created_at
			FROM processed_cases
			WHERE id = $1 AND executor_id = $2
		`, processedCaseID, executorID)

		pc, err := scanProcessedCase(row)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}

		title := pc.Title
		if req.Title != nil {
			title = *req.Title
		}
		theme := pc.Theme
		if req.Theme != nil {
			theme = *req.Theme
		}
		description := pc.Description
		if req.Description != nil {
			description = *req.Description
		}

		filesJSON, err := encodeFiles(pc.Files)
		if err != nil {
			return err
		}

		project = &models.Project{
			CaseID:        pc.CaseID,
			UserID:        pc.UserID,
			Title:         title,
			Theme:         theme,
			Description:   description,
			Cover:         pc.Cover,
			Files:         pc.Files,
			Status:        models.ProjectStatusClosed,
			ExecutorEmail: pc.ExecutorEmail,
		}
		err = tx.QueryRowContext(ctx, `
			INSERT INTO projects
				(case_id, user_id, title, theme, description, cover, files, status, executor_email)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id, created_at
		`, project.CaseID, project.UserID, project.Title, project.Theme,
			project.Description, project.Cover, filesJSON, project.Status, project.ExecutorEmail).
			Scan(&project.ID, &project.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			DELETE FROM processed_cases
			WHERE id = $1
		`, processedCaseID); err != nil {
			return fmt.Errorf("failed to delete processed case: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return project, nil
}
