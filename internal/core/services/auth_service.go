package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vintagenote/vn_backend/internal/apperrors"
	"github.com/vintagenote/vn_backend/internal/core/domain"
	portssvc "github.com/vintagenote/vn_backend/internal/core/ports/services"
	"github.com/vintagenote/vn_backend/internal/platform/config"
	"github.com/vintagenote/vn_backend/internal/utils"
	"google.golang.org/api/idtoken"
)

// tokenService issues HS256 access tokens.
type tokenService struct {
	BaseService
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{BaseService: newBaseService(), cfg: cfg}
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := s.Now().Add(s.cfg.JWTExpiryDuration)
	accessToken, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token")
		return "", time.Time{}, err
	}
	return accessToken, expiryTime, nil
}

// IDTokenValidator matches idtoken.Validate.
type IDTokenValidator func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

type googleAuthService struct {
	clientID string
	validate IDTokenValidator
}

// NewGoogleAuthService validates Google ID tokens for clientID.
func NewGoogleAuthService(clientID string, validate IDTokenValidator) portssvc.GoogleAuthSvcFacade {
	if validate == nil {
		validate = idtoken.Validate
	}
	return &googleAuthService{clientID: clientID, validate: validate}
}

// ValidateGoogleIDToken validates an ID token received from Google and returns the payload if valid.
func (s *googleAuthService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	if s.clientID == "" {
		return nil, errors.New("google client ID is not configured in the application")
	}
	payload, err := s.validate(ctx, idTokenString, s.clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: google ID token validation failed: %v", apperrors.ErrUnauthorized, err)
	}
	return payload, nil
}
