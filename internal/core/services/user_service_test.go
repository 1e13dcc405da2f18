package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/vintagenote/vn_backend/internal/apperrors"
	"github.com/vintagenote/vn_backend/internal/core/domain"
	portssvc "github.com/vintagenote/vn_backend/internal/core/ports/services"
	"github.com/vintagenote/vn_backend/internal/core/services"
	"github.com/vintagenote/vn_backend/internal/dto"
	"github.com/vintagenote/vn_backend/internal/platform/config"
	"github.com/vintagenote/vn_backend/internal/utils"
	"google.golang.org/api/idtoken"
)

type UserServiceTestSuite struct {
	suite.Suite
	repo    *MockUserRepository
	service portssvc.UserSvcFacade
	ctx     context.Context
}

func (s *UserServiceTestSuite) SetupTest() {
	s.repo = new(MockUserRepository)
	s.service = services.NewUserService(s.repo)
	s.ctx = context.Background()
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) TestCreateUser_Success() {
	s.repo.On("SaveUser", s.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == "seller" && u.Grade == domain.GradeFree && u.PasswordHash != "secret123"
	})).Return(nil)

	user, err := s.service.CreateUser(s.ctx, dto.CreateUserRequest{Username: " Seller ", Password: "secret123", Name: "Seller"})

	s.Require().NoError(err)
	s.NotEmpty(user.UserID)
	s.Equal(domain.ProviderLocal, user.AuthProvider)
	s.True(utils.CheckPasswordHash("secret123", user.PasswordHash))
}

func (s *UserServiceTestSuite) TestCreateUser_Duplicate() {
	s.repo.On("SaveUser", s.ctx, mock.Anything).Return(apperrors.ErrDuplicate)

	_, err := s.service.CreateUser(s.ctx, dto.CreateUserRequest{Username: "seller", Password: "secret123", Name: "Seller"})

	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *UserServiceTestSuite) TestAuthenticateUser() {
	hash, err := utils.HashPassword("secret123")
	s.Require().NoError(err)
	stored := &domain.User{UserID: "u1", Username: "seller", PasswordHash: hash, AuthProvider: domain.ProviderLocal}
	s.repo.On("FindUserByUsername", s.ctx, "seller").Return(stored, nil)
	s.repo.On("FindUserByUsername", s.ctx, "ghost").Return(nil, apperrors.ErrNotFound)

	user, err := s.service.AuthenticateUser(s.ctx, "Seller", "secret123")
	s.Require().NoError(err)
	s.Equal("u1", user.UserID)

	_, err = s.service.AuthenticateUser(s.ctx, "seller", "wrong-password")
	s.ErrorIs(err, apperrors.ErrUnauthorized)

	_, err = s.service.AuthenticateUser(s.ctx, "ghost", "secret123")
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *UserServiceTestSuite) TestUpdateGrade() {
	s.repo.On("FindUserByID", s.ctx, "u1").Return(freeUser("u1"), nil)
	s.repo.On("UpdateUser", s.ctx, mock.MatchedBy(func(u domain.User) bool { return u.Grade == domain.GradePro })).Return(nil)

	user, err := s.service.UpdateGrade(s.ctx, "u1", domain.GradePro)

	s.Require().NoError(err)
	s.Equal(domain.GradePro, user.Grade)

	_, err = s.service.UpdateGrade(s.ctx, "u1", domain.UserGrade("gold"))
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *UserServiceTestSuite) TestCheckCurrencyAccess() {
	s.repo.On("FindUserByID", s.ctx, "free").Return(freeUser("free"), nil)
	s.repo.On("FindUserByID", s.ctx, "pro").Return(proUser("pro"), nil)

	s.NoError(s.service.CheckCurrencyAccess(s.ctx, "free", domain.KRW))
	s.ErrorIs(s.service.CheckCurrencyAccess(s.ctx, "free", domain.USD), apperrors.ErrForbidden)
	s.NoError(s.service.CheckCurrencyAccess(s.ctx, "pro", domain.USD))
}

func (s *UserServiceTestSuite) TestUpdateUser_EmptyName() {
	s.repo.On("FindUserByID", s.ctx, "u1").Return(freeUser("u1"), nil)

	_, err := s.service.UpdateUser(s.ctx, "u1", dto.UpdateUserRequest{Name: ptr("   ")})

	s.ErrorIs(err, apperrors.ErrValidation)
	s.repo.AssertNotCalled(s.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestFindOrCreateGoogleUser() {
	existing := &domain.User{UserID: "g1", AuthProvider: domain.ProviderGoogle, ProviderUserID: "sub-1"}
	s.repo.On("FindUserByProvider", s.ctx, domain.ProviderGoogle, "sub-1").Return(existing, nil)
	s.repo.On("FindUserByProvider", s.ctx, domain.ProviderGoogle, "sub-2").Return(nil, apperrors.ErrNotFound)
	s.repo.On("SaveUser", s.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == "google_sub-2" && u.ProviderUserID == "sub-2"
	})).Return(nil)

	user, err := s.service.FindOrCreateGoogleUser(s.ctx, "sub-1", "a@example.com", "A")
	s.Require().NoError(err)
	s.Equal("g1", user.UserID)

	user, err = s.service.FindOrCreateGoogleUser(s.ctx, "sub-2", "b@example.com", "")
	s.Require().NoError(err)
	s.Equal("b@example.com", user.Name)
	s.Equal(domain.ProviderGoogle, user.AuthProvider)
	s.repo.AssertNumberOfCalls(s.T(), "SaveUser", 1)
}

func TestTokenService_GenerateAccessToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiryDuration: time.Hour, JWTIssuer: "vintage-note"}
	svc := services.NewTokenService(cfg)

	token, expiresAt, err := svc.GenerateAccessToken(context.Background(), &domain.User{UserID: "u1"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := utils.ParseAndValidateJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "vintage-note", claims.Issuer)
}

func TestGoogleAuthService_ValidateGoogleIDToken(t *testing.T) {
	validate := func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
		if token != "good" {
			return nil, errors.New("bad signature")
		}
		return &idtoken.Payload{Audience: audience, Subject: "sub-1"}, nil
	}
	svc := services.NewGoogleAuthService("client-id", validate)

	payload, err := svc.ValidateGoogleIDToken(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "sub-1", payload.Subject)
	assert.Equal(t, "client-id", payload.Audience)

	_, err = svc.ValidateGoogleIDToken(context.Background(), "forged")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = services.NewGoogleAuthService("", validate).ValidateGoogleIDToken(context.Background(), "good")
	assert.Error(t, err)
}
