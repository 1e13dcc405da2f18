package models

import (
	"database/sql"
	"time"
)

// User is a row of the users table.
type User struct {
	UserID         string         `db:"user_id"`
	Username       string         `db:"username"`
	PasswordHash   sql.NullString `db:"password_hash"` // empty for Google accounts
	Name           string         `db:"name"`
	Email          sql.NullString `db:"email"`
	Grade          string         `db:"grade"`
	AuthProvider   string         `db:"auth_provider"`
	ProviderUserID sql.NullString `db:"provider_user_id"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
