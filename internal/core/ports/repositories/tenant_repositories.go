package repositories

import (
	"context"

	"github.com/invara/invoicing_backend/internal/core/domain"
)

// TenantRepositoryFacade defines persistence operations for tenants,
// memberships and organizations.
type TenantRepositoryFacade interface {
	SaveTenant(ctx context.Context, tenant domain.Tenant) error
	FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)
	UpdateTenant(ctx context.Context, tenant domain.Tenant) error

	AddMember(ctx context.Context, member domain.TenantMember) error
	FindMemberRole(ctx context.Context, userID string, tenantID string) (domain.TenantRole, error)

	SaveOrganization(ctx context.Context, org domain.Organization) error
	FindOrganizationByID(ctx context.Context, orgID string) (*domain.Organization, error)
}
