package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/invara/invoicing_backend/internal/apperrors"
	"github.com/invara/invoicing_backend/internal/core/domain"
	"github.com/invara/invoicing_backend/internal/core/services"
	"github.com/invara/invoicing_backend/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	portssvc "github.com/invara/invoicing_backend/internal/core/ports/services"
)

type TenantServiceTestSuite struct {
	suite.Suite
	tenantRepo  *MockTenantRepository
	invoiceRepo *MockInvoiceRepository
	service     portssvc.TenantSvcFacade

	tenantID string
	userID   string
}

func (suite *TenantServiceTestSuite) SetupTest() {
	suite.tenantRepo = new(MockTenantRepository)
	suite.invoiceRepo = new(MockInvoiceRepository)
	suite.service = services.NewTenantService(suite.tenantRepo, suite.invoiceRepo)

	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *TenantServiceTestSuite) TestAuthorizeUserAction() {
	ctx := context.Background()

	tests := []struct {
		name     string
		role     domain.TenantRole
		required domain.TenantRole
		wantErr  bool
	}{
		{"admin covers admin", domain.RoleAdmin, domain.RoleAdmin, false},
		{"admin covers member", domain.RoleAdmin, domain.RoleMember, false},
		{"member covers readonly", domain.RoleMember, domain.RoleReadOnly, false},
		{"member denied admin", domain.RoleMember, domain.RoleAdmin, true},
		{"readonly denied member", domain.RoleReadOnly, domain.RoleMember, true},
		{"removed denied readonly", domain.RoleRemoved, domain.RoleReadOnly, true},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			repo := new(MockTenantRepository)
			svc := services.NewTenantService(repo, suite.invoiceRepo)
			repo.On("FindMemberRole", ctx, suite.userID, suite.tenantID).Return(tt.role, nil).Once()

			err := svc.AuthorizeUserAction(ctx, suite.userID, suite.tenantID, tt.required)

			if tt.wantErr {
				suite.ErrorIs(err, apperrors.ErrForbidden)
			} else {
				suite.NoError(err)
			}
		})
	}
}

func (suite *TenantServiceTestSuite) TestAuthorizeUserAction_NonMember() {
	ctx := context.Background()
	suite.tenantRepo.On("FindMemberRole", ctx, suite.userID, suite.tenantID).
		Return(domain.TenantRole(""), apperrors.ErrForbidden).Once()

	err := suite.service.AuthorizeUserAction(ctx, suite.userID, suite.tenantID, domain.RoleReadOnly)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *TenantServiceTestSuite) TestCreateTenant_CreatorBecomesAdmin() {
	ctx := context.Background()
	req := dto.CreateTenantRequest{
		Name:    "Acme",
		Profile: dto.IssuerProfileRequest{LegalName: "Acme GmbH"},
	}

	var saved domain.Tenant
	suite.tenantRepo.On("SaveTenant", ctx, mock.AnythingOfType("domain.Tenant")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Tenant) }).
		Return(nil).Once()

	var membership domain.TenantMember
	suite.tenantRepo.On("AddMember", ctx, mock.AnythingOfType("domain.TenantMember")).
		Run(func(args mock.Arguments) { membership = args.Get(1).(domain.TenantMember) }).
		Return(nil).Once()

	tenant, err := suite.service.CreateTenant(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Acme", tenant.Name)
	suite.Equal("INV", tenant.NumberPrefix)
	suite.True(tenant.IsActive)
	suite.Equal(saved.TenantID, membership.TenantID)
	suite.Equal(suite.userID, membership.UserID)
	suite.Equal(domain.RoleAdmin, membership.Role)
	suite.tenantRepo.AssertExpectations(suite.T())
}

func (suite *TenantServiceTestSuite) TestCreateTenant_CustomPrefix() {
	ctx := context.Background()
	req := dto.CreateTenantRequest{
		Name:         "Acme",
		Profile:      dto.IssuerProfileRequest{LegalName: "Acme GmbH"},
		NumberPrefix: "ACM",
	}

	suite.tenantRepo.On("SaveTenant", ctx, mock.AnythingOfType("domain.Tenant")).Return(nil).Once()
	suite.tenantRepo.On("AddMember", ctx, mock.AnythingOfType("domain.TenantMember")).Return(nil).Once()

	tenant, err := suite.service.CreateTenant(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("ACM", tenant.NumberPrefix)
}

func (suite *TenantServiceTestSuite) TestAddMember_AdminOnly() {
	ctx := context.Background()
	target := uuid.NewString()

	suite.tenantRepo.On("FindMemberRole", ctx, suite.userID, suite.tenantID).Return(domain.RoleMember, nil).Once()

	err := suite.service.AddMember(ctx, suite.tenantID, target, domain.RoleMember, suite.userID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.tenantRepo.AssertNotCalled(suite.T(), "AddMember", mock.Anything, mock.Anything)
}

func (suite *TenantServiceTestSuite) TestCheckIssuanceAllowance_NilQuotaUnlimited() {
	ctx := context.Background()
	tenant := &domain.Tenant{TenantID: suite.tenantID, IsActive: true}

	suite.tenantRepo.On("FindTenantByID", ctx, suite.tenantID).Return(tenant, nil).Once()

	err := suite.service.CheckIssuanceAllowance(ctx, suite.tenantID)

	suite.NoError(err)
	suite.invoiceRepo.AssertNotCalled(suite.T(), "CountIssuedByTenant", mock.Anything, mock.Anything)
}

func (suite *TenantServiceTestSuite) TestCheckIssuanceAllowance_BelowQuota() {
	ctx := context.Background()
	quota := int64(10)
	tenant := &domain.Tenant{TenantID: suite.tenantID, IssuanceQuota: &quota, IsActive: true}

	suite.tenantRepo.On("FindTenantByID", ctx, suite.tenantID).Return(tenant, nil).Once()
	suite.invoiceRepo.On("CountIssuedByTenant", ctx, suite.tenantID).Return(int64(9), nil).Once()

	suite.NoError(suite.service.CheckIssuanceAllowance(ctx, suite.tenantID))
}

func (suite *TenantServiceTestSuite) TestCheckIssuanceAllowance_Exhausted() {
	ctx := context.Background()
	quota := int64(10)
	tenant := &domain.Tenant{TenantID: suite.tenantID, IssuanceQuota: &quota, IsActive: true}

	suite.tenantRepo.On("FindTenantByID", ctx, suite.tenantID).Return(tenant, nil).Once()
	suite.invoiceRepo.On("CountIssuedByTenant", ctx, suite.tenantID).Return(int64(10), nil).Once()

	err := suite.service.CheckIssuanceAllowance(ctx, suite.tenantID)

	suite.ErrorIs(err, apperrors.ErrPrecondition)
}

func (suite *TenantServiceTestSuite) TestGetOrganizationByID_CrossTenantHidden() {
	ctx := context.Background()
	org := &domain.Organization{OrganizationID: uuid.NewString(), TenantID: uuid.NewString()}

	suite.tenantRepo.On("FindMemberRole", ctx, suite.userID, suite.tenantID).Return(domain.RoleReadOnly, nil).Once()
	suite.tenantRepo.On("FindOrganizationByID", ctx, org.OrganizationID).Return(org, nil).Once()

	_, err := suite.service.GetOrganizationByID(ctx, suite.tenantID, org.OrganizationID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestTenantServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TenantServiceTestSuite))
}
