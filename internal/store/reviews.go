package store

import (
	"context"
	"fmt"

	"casework-backend/internal/models"
)

func (s *Store) CreateReview(ctx context.Context, r *models.Review) (*models.Review, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO reviews (user_id, reviewer_id, reviewer_name, reviewer_photo, text, rating)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, r.UserID, r.ReviewerID, r.ReviewerName, r.ReviewerPhoto, r.Text, r.Rating).
		Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		if isPQError(err, pqCheckViolation) {
			return nil, ErrInvalidRating
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	return r, nil
}

// ListReviewsByUser returns reviews left about the given user, newest first.
func (s *Store) ListReviewsByUser(ctx context.Context, userID int64) ([]models.Review, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, reviewer_id, reviewer_name, reviewer_photo, text, rating, created_at
		FROM reviews
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var r models.Review
		err := rows.Scan(
			&r.ID, &r.UserID, &r.ReviewerID, &r.ReviewerName,
			&r.ReviewerPhoto, &r.Text, &r.Rating, &r.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return reviews, nil
}
