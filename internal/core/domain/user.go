package domain

import (
	"fmt"
	"time"

	"github.com/vintagenote/vn_backend/internal/apperrors"
)

// UserGrade gates currencies and dashboard features.
type UserGrade string

const (
	GradeFree UserGrade = "free"
	GradePro  UserGrade = "pro"
)

// ParseUserGrade validates a grade value.
func ParseUserGrade(s string) (UserGrade, error) {
	switch UserGrade(s) {
	case GradeFree, GradePro:
		return UserGrade(s), nil
	}
	return "", fmt.Errorf("%w: unknown grade '%s'", apperrors.ErrValidation, s)
}

// AuthProvider records how a user signs in.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// User represents a user of the application in the domain.
type User struct {
	UserID         string       `json:"userID"` // Primary Key (UUID)
	Username       string       `json:"username"`
	PasswordHash   string       `json:"-"`
	Name           string       `json:"name"`
	Email          string       `json:"email,omitempty"`
	Grade          UserGrade    `json:"grade"`
	AuthProvider   AuthProvider `json:"authProvider"`
	ProviderUserID string       `json:"-"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}

// CanUseCurrency reports whether the user's grade allows recording amounts in code.
// Free users are limited to KRW.
func (u *User) CanUseCurrency(code CurrencyCode) bool {
	return code == KRW || u.Grade == GradePro
}

// HasExtendedDashboard reports whether category and daily breakdowns are available.
func (u *User) HasExtendedDashboard() bool {
	return u.Grade == GradePro
}
