package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/vintagenote/vn_backend/internal/apperrors"
	"github.com/vintagenote/vn_backend/internal/core/domain"
	portsrepo "github.com/vintagenote/vn_backend/internal/core/ports/repositories"
	portssvc "github.com/vintagenote/vn_backend/internal/core/ports/services"
	"github.com/vintagenote/vn_backend/internal/dto"
	"github.com/vintagenote/vn_backend/internal/utils"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{BaseService: newBaseService(), userRepo: userRepo}
}

func (s *userService) newUser(username, name, email string, provider domain.AuthProvider) domain.User {
	now := s.Now()
	userID := uuid.NewString()
	return domain.User{
		UserID:       userID,
		Username:     username,
		Name:         name,
		Email:        email,
		Grade:        domain.GradeFree,
		AuthProvider: provider,
		AuditFields:  domain.NewAuditFields(userID, now),
	}
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := s.newUser(strings.ToLower(strings.TrimSpace(req.Username)), strings.TrimSpace(req.Name), req.Email, domain.ProviderLocal)
	user.PasswordHash = hash

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: username '%s' is taken", apperrors.ErrDuplicate, user.Username)
		}
		s.LogError(ctx, err, "Failed to save user", slog.String("username", user.Username))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

func (s *userService) CheckCurrencyAccess(ctx context.Context, userID string, code domain.CurrencyCode) error {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.CanUseCurrency(code) {
		return fmt.Errorf("%w: the %s view requires the pro grade", apperrors.ErrForbidden, code)
	}
	return nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name cannot be empty")
		}
		user.Name = name
	}
	return s.save(ctx, user)
}

func (s *userService) UpdateGrade(ctx context.Context, userID string, grade domain.UserGrade) (*domain.User, error) {
	if _, err := domain.ParseUserGrade(string(grade)); err != nil {
		return nil, err
	}
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Grade == grade {
		return user, nil
	}
	user.Grade = grade
	s.LogInfo(ctx, "User grade changed", slog.String("grade", string(grade)))
	return s.save(ctx, user)
}

func (s *userService) save(ctx context.Context, user *domain.User) (*domain.User, error) {
	user.Touch(user.UserID, s.Now())
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user.AuthProvider != domain.ProviderLocal || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)
	}
	return user, nil
}

func (s *userService) FindOrCreateGoogleUser(ctx context.Context, subject, email, name string) (*domain.User, error) {
	if subject == "" {
		return nil, fmt.Errorf("%w: google identity has no subject", apperrors.ErrUnauthorized)
	}
	user, err := s.userRepo.FindUserByProvider(ctx, domain.ProviderGoogle, subject)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up google user: %w", err)
	}

	if name == "" {
		name = email
	}
	created := s.newUser("google_"+subject, name, email, domain.ProviderGoogle)
	created.ProviderUserID = subject
	if err := s.userRepo.SaveUser(ctx, created); err != nil {
		s.LogError(ctx, err, "Failed to save google user")
		return nil, fmt.Errorf("failed to create google user: %w", err)
	}
	s.LogInfo(ctx, "Google user registered", slog.String("user_id", created.UserID))
	return &created, nil
}
