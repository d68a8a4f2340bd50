package models

import (
	"database/sql"
	"time"
)

// Project is the immutable record produced when a ProcessedCase is completed.
type Project struct {
	ID            int64
	CaseID        int64
	UserID        int64
	Title         string
	Theme         string
	Description   string
	Cover         sql.NullString
	Files         []string
	Status        string
	ExecutorEmail string
	CreatedAt     time.Time
}
