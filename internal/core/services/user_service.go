package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/invara/invoicing_backend/internal/apperrors"
	"github.com/invara/invoicing_backend/internal/core/domain"
	portsrepo "github.com/invara/invoicing_backend/internal/core/ports/repositories"
	portssvc "github.com/invara/invoicing_backend/internal/core/ports/services"
	"github.com/invara/invoicing_backend/internal/dto"
	"github.com/invara/invoicing_backend/internal/middleware"
	"github.com/invara/invoicing_backend/internal/utils"
)

// UserService handles user accounts and credential checks.
type UserService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserService.
func NewUserService(ur portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &UserService{userRepo: ur}
}

// Ensure UserService implements the portssvc.UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*UserService)(nil)

// Register creates a new user account with a hashed password.
func (s *UserService) Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	userID := uuid.NewString()
	user := domain.User{
		UserID:        userID,
		Name:          req.Name,
		Email:         req.Email,
		PasswordHash:  hash,
		EmailVerified: false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		logger.Error("Failed to save user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	logger.Info("User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

// Authenticate checks email and password. Wrong email and wrong password
// return the same error.
func (s *UserService) Authenticate(ctx context.Context, email string, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
	}
	return user, nil
}

// GetUserByID retrieves a user by ID.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// VerifyEmail records a successful email verification. Token delivery and
// checking happen in the external identity collaborator; this is the
// terminal write.
func (s *UserService) VerifyEmail(ctx context.Context, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.userRepo.MarkEmailVerified(ctx, userID); err != nil {
		return err
	}
	logger.Info("Email verified", slog.String("user_id", userID))
	return nil
}

// IsEmailVerified answers the identity-provider collaborator question for
// the issuance gate.
func (s *UserService) IsEmailVerified(ctx context.Context, userID string) (bool, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.EmailVerified, nil
}

// TokenService mints JWT access tokens for authenticated users.
type TokenService struct {
	secret string
	expiry time.Duration
	issuer string
}

// NewTokenService creates a new TokenService.
func NewTokenService(secret string, expiry time.Duration, issuer string) portssvc.TokenSvcFacade {
	return &TokenService{secret: secret, expiry: expiry, issuer: issuer}
}

// Ensure TokenService implements the portssvc.TokenSvcFacade interface
var _ portssvc.TokenSvcFacade = (*TokenService)(nil)

// GenerateAccessToken mints a signed bearer token for the user.
func (s *TokenService) GenerateAccessToken(userID string) (string, error) {
	return utils.GenerateJWT(userID, s.secret, s.expiry, s.issuer)
}
