package services

import (
	"context"

	"github.com/invara/invoicing_backend/internal/core/domain"
	"github.com/invara/invoicing_backend/internal/dto"
)

// IdentityVerifierSvc answers the identity-provider collaborator question:
// is this actor's email verified? Issuance refuses unverified actors.
type IdentityVerifierSvc interface {
	IsEmailVerified(ctx context.Context, userID string) (bool, error)
}

// UserSvcFacade manages user accounts and authentication.
type UserSvcFacade interface {
	IdentityVerifierSvc

	Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)
	Authenticate(ctx context.Context, email string, password string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	VerifyEmail(ctx context.Context, userID string) error
}

// TokenSvcFacade mints access tokens for authenticated users.
type TokenSvcFacade interface {
	GenerateAccessToken(userID string) (string, error)
}
