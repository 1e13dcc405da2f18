package services

import (
	"context"
	"time"

	"github.com/vintagenote/vn_backend/internal/core/domain"
	"google.golang.org/api/idtoken"
)

// TokenSvcFacade issues access tokens.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}

// GoogleAuthSvcFacade verifies Google sign-in.
type GoogleAuthSvcFacade interface {
	// ValidateGoogleIDToken validates an ID token string from Google and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
