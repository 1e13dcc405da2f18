package services

import (
	"context"

	"github.com/vintagenote/vn_backend/internal/core/domain"
	"github.com/vintagenote/vn_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// CheckCurrencyAccess fails with apperrors.ErrForbidden when the user's grade excludes code.
	CheckCurrencyAccess(ctx context.Context, userID string, code domain.CurrencyCode) error
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser registers a local free-grade user.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// UpdateUser updates an existing user.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)

	// UpdateGrade switches the user between free and pro.
	UpdateGrade(ctx context.Context, userID string, grade domain.UserGrade) (*domain.User, error)
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser checks local credentials. Any mismatch yields apperrors.ErrUnauthorized.
	AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error)

	// FindOrCreateGoogleUser returns the user linked to a Google subject, creating it on first sign-in.
	FindOrCreateGoogleUser(ctx context.Context, subject, email, name string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}
