package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/invara/invoicing_backend/internal/apperrors"
	"github.com/invara/invoicing_backend/internal/core/domain"
	"github.com/invara/invoicing_backend/internal/core/services"
	"github.com/invara/invoicing_backend/internal/dto"
	"github.com/invara/invoicing_backend/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	portssvc "github.com/invara/invoicing_backend/internal/core/ports/services"
)

type UserServiceTestSuite struct {
	suite.Suite
	userRepo *MockUserRepository
	service  portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.userRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.userRepo)
}

func (suite *UserServiceTestSuite) TestRegister() {
	ctx := context.Background()
	req := dto.RegisterUserRequest{Name: "Ada", Email: "ada@example.com", Password: "correct horse"}

	var saved domain.User
	suite.userRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.User) }).
		Return(nil).Once()

	user, err := suite.service.Register(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("ada@example.com", user.Email)
	suite.False(user.EmailVerified)
	// The stored hash must check out against the password and never equal it.
	suite.NotEqual(req.Password, saved.PasswordHash)
	suite.True(utils.CheckPasswordHash(req.Password, saved.PasswordHash))
}

func (suite *UserServiceTestSuite) TestRegister_DuplicateEmail() {
	ctx := context.Background()
	req := dto.RegisterUserRequest{Name: "Ada", Email: "ada@example.com", Password: "correct horse"}

	suite.userRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.Register(ctx, req)

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *UserServiceTestSuite) TestAuthenticate() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct horse")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Email: "ada@example.com", PasswordHash: hash}

	suite.userRepo.On("FindUserByEmail", ctx, "ada@example.com").Return(user, nil).Once()

	got, err := suite.service.Authenticate(ctx, "ada@example.com", "correct horse")

	suite.Require().NoError(err)
	suite.Equal(user.UserID, got.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticate_SameErrorForWrongEmailAndPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct horse")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Email: "ada@example.com", PasswordHash: hash}

	suite.userRepo.On("FindUserByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.userRepo.On("FindUserByEmail", ctx, "ada@example.com").Return(user, nil).Once()

	_, wrongEmailErr := suite.service.Authenticate(ctx, "nobody@example.com", "correct horse")
	_, wrongPasswordErr := suite.service.Authenticate(ctx, "ada@example.com", "wrong")

	// Credential probing must not reveal which half was wrong.
	suite.ErrorIs(wrongEmailErr, apperrors.ErrForbidden)
	suite.ErrorIs(wrongPasswordErr, apperrors.ErrForbidden)
	suite.Equal(wrongEmailErr.Error(), wrongPasswordErr.Error())
}

func (suite *UserServiceTestSuite) TestVerifyEmail() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.userRepo.On("MarkEmailVerified", ctx, userID).Return(nil).Once()

	suite.NoError(suite.service.VerifyEmail(ctx, userID))
	suite.userRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestIsEmailVerified() {
	ctx := context.Background()
	verified := &domain.User{UserID: uuid.NewString(), EmailVerified: true}
	unverified := &domain.User{UserID: uuid.NewString(), EmailVerified: false}

	suite.userRepo.On("FindUserByID", ctx, verified.UserID).Return(verified, nil).Once()
	suite.userRepo.On("FindUserByID", ctx, unverified.UserID).Return(unverified, nil).Once()

	ok, err := suite.service.IsEmailVerified(ctx, verified.UserID)
	suite.Require().NoError(err)
	suite.True(ok)

	ok, err = suite.service.IsEmailVerified(ctx, unverified.UserID)
	suite.Require().NoError(err)
	suite.False(ok)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func TestTokenService_GenerateAccessToken(t *testing.T) {
	svc := services.NewTokenService("test-secret", time.Hour, "invara")

	token, err := svc.GenerateAccessToken("user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := utils.ParseAndValidateJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("minted token failed validation: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Fatalf("expected subject user-1, got %s", claims.Subject)
	}
	if claims.Issuer != "invara" {
		t.Fatalf("expected issuer invara, got %s", claims.Issuer)
	}
}
