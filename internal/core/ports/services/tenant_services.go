package services

import (
	"context"

	"github.com/invara/invoicing_backend/internal/core/domain"
	"github.com/invara/invoicing_backend/internal/dto"
)

// TenantAuthorizerSvc checks whether a user may act within a tenant.
type TenantAuthorizerSvc interface {
	// AuthorizeUserAction returns nil when the user holds at least the
	// required role, ErrForbidden or ErrNotFound otherwise.
	AuthorizeUserAction(ctx context.Context, userID string, tenantID string, required domain.TenantRole) error
}

// TenantSvcFacade manages tenants, organizations and the issuance quota
// collaborator check.
type TenantSvcFacade interface {
	TenantAuthorizerSvc

	CreateTenant(ctx context.Context, req dto.CreateTenantRequest, creatorUserID string) (*domain.Tenant, error)
	GetTenantByID(ctx context.Context, tenantID string, requestingUserID string) (*domain.Tenant, error)
	AddMember(ctx context.Context, tenantID string, userID string, role domain.TenantRole, actorUserID string) error

	CreateOrganization(ctx context.Context, tenantID string, req dto.CreateOrganizationRequest, actorUserID string) (*domain.Organization, error)
	GetOrganizationByID(ctx context.Context, tenantID string, orgID string, requestingUserID string) (*domain.Organization, error)

	// CheckIssuanceAllowance is the subscription collaborator check: it
	// returns nil when the tenant may issue another document, or a
	// precondition error when the quota is exhausted.
	CheckIssuanceAllowance(ctx context.Context, tenantID string) error
}
