package models

import (
	"database/sql"
	"time"
)

const (
	CaseStatusOpen     = "open"
	CaseStatusAccepted = "accepted"

	ProcessedCaseStatusInProcess = "in_process"

	ProjectStatusClosed = "closed"
)

// Case is an open project brief posted by a user. Files is always a decoded
// list of upload paths, never the raw JSON column value.
type Case struct {
	ID          int64
	UserID      int64
	Title       string
	Theme       string
	Description string
	Cover       sql.NullString
	Files       []string
	Status      string
	CreatedAt   time.Time
}

// ProcessedCase is a Case that has been accepted and is being worked on by
// an executor. It carries a copy of the Case fields plus executor info and
// is deleted when the work is completed.
type ProcessedCase struct {
	ID            int64
	CaseID        int64
	UserID        int64
	Title         string
	Theme         string
	Description   string
	Cover         sql.NullString
	Files         []string
	Status        string
	ExecutorID    int64
	ExecutorEmail string
	CreatedAt     time.Time
}
