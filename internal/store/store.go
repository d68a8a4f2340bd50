// Package store implements the relational data store for the marketplace:
// users, cases, processed cases, projects and reviews, accessed through
// parameterized queries against PostgreSQL. The case lifecycle transitions
// (accept, complete) are the only multi-statement transactional workflows.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned when registering an email that is
	// already taken.
	ErrDuplicateEmail = errors.New("user with this email already exists")

	// ErrCaseAlreadyAccepted is returned when accepting a case that is no
	// longer open, or that already has a live processed case.
	ErrCaseAlreadyAccepted = errors.New("case already accepted")

	// ErrInvalidRating is returned when a review rating falls outside 1-5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

// Store wraps a *sql.DB handle. It is constructed once at startup, injected
// into handlers, and closed at shutdown.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for lifecycle management (Close at
// shutdown) and migrations.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Open connects to PostgreSQL and verifies the connection.
func Open(connectionString string) (*Store, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return New(db), nil
}

const (
	pqUniqueViolation = "23505"
	pqCheckViolation  = "23514"
)

func isPQError(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}

// encodeFiles stores a path list as a JSON array. A nil slice is stored as
// the empty array so reads never see SQL NULL produced by this code path.
func encodeFiles(files []string) (string, error) {
	if files == nil {
		files = []string{}
	}
	raw, err := json.Marshal(files)
	if err != nil {
		return "", fmt.Errorf("failed to encode files: %w", err)
	}
	return string(raw), nil
}

// decodeFiles turns the raw files column back into a path list. NULL and
// empty columns decode to an empty list, never to a raw string.
func decodeFiles(raw sql.NullString) ([]string, error) {
	if !raw.Valid || raw.String == "" {
		return []string{}, nil
	}
	var files []string
	if err := json.Unmarshal([]byte(raw.String), &files); err != nil {
		return nil, fmt.Errorf("failed to decode files: %w", err)
	}
	if files == nil {
		files = []string{}
	}
	return files, nil
}
