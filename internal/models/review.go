package models

import (
	"database/sql"
	"time"
)

// Review is an append-only rating one user leaves about another. Reviewer
// name and photo are denormalized from the reviewer row at creation time.
type Review struct {
	ID            int64
	UserID        int64
	ReviewerID    int64
	ReviewerName  sql.NullString
	ReviewerPhoto sql.NullString
	Text          string
	Rating        int
	CreatedAt     time.Time
}
