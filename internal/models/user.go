package models

import (
	"database/sql"
	"time"
)

// User is the database shape of a registered account. Password holds the
// bcrypt hash and must never reach a JSON response.
type User struct {
	ID          int64
	Email       string
	Password    string
	FirstName   sql.NullString
	LastName    sql.NullString
	Photo       sql.NullString
	Description sql.NullString
	CreatedAt   time.Time
}
