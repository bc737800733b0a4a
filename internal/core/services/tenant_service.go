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
)

// defaultNumberPrefix is used when a tenant does not choose its own.
const defaultNumberPrefix = "INV"

// TenantService handles tenants, memberships, organizations and the
// issuance quota check.
type TenantService struct {
	tenantRepo  portsrepo.TenantRepositoryFacade
	invoiceRepo portsrepo.InvoiceReader
}

// NewTenantService creates a new TenantService.
func NewTenantService(tr portsrepo.TenantRepositoryFacade, ir portsrepo.InvoiceReader) portssvc.TenantSvcFacade {
	return &TenantService{
		tenantRepo:  tr,
		invoiceRepo: ir,
	}
}

// Ensure TenantService implements the portssvc.TenantSvcFacade interface
var _ portssvc.TenantSvcFacade = (*TenantService)(nil)

// AuthorizeUserAction checks the user's role in the tenant against the
// required role. Non-members get ErrForbidden regardless of whether the
// tenant exists.
func (s *TenantService) AuthorizeUserAction(ctx context.Context, userID string, tenantID string, required domain.TenantRole) error {
	role, err := s.tenantRepo.FindMemberRole(ctx, userID, tenantID)
	if err != nil {
		return err
	}
	if !role.Covers(required) {
		return fmt.Errorf("%w: role %s does not cover %s", apperrors.ErrForbidden, role, required)
	}
	return nil
}

// CreateTenant provisions a new billing environment and makes the creator
// its initial admin.
func (s *TenantService) CreateTenant(ctx context.Context, req dto.CreateTenantRequest, creatorUserID string) (*domain.Tenant, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	prefix := req.NumberPrefix
	if prefix == "" {
		prefix = defaultNumberPrefix
	}

	now := time.Now()
	tenant := domain.Tenant{
		TenantID:      uuid.NewString(),
		Name:          req.Name,
		Profile:       req.Profile.ToDomainProfile(),
		IssuanceQuota: req.IssuanceQuota,
		NumberPrefix:  prefix,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.tenantRepo.SaveTenant(ctx, tenant); err != nil {
		logger.Error("Failed to save tenant", slog.String("error", err.Error()), slog.String("tenant_name", req.Name))
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	membership := domain.TenantMember{
		UserID:   creatorUserID,
		TenantID: tenant.TenantID,
		Role:     domain.RoleAdmin,
	}
	if err := s.tenantRepo.AddMember(ctx, membership); err != nil {
		logger.Error("Failed to add creator as admin", slog.String("error", err.Error()), slog.String("tenant_id", tenant.TenantID))
		return nil, fmt.Errorf("failed to add creator to tenant: %w", err)
	}

	logger.Info("Tenant created", slog.String("tenant_id", tenant.TenantID), slog.String("creator_user_id", creatorUserID))
	return &tenant, nil
}

// GetTenantByID retrieves a tenant the requesting user is a member of.
func (s *TenantService) GetTenantByID(ctx context.Context, tenantID string, requestingUserID string) (*domain.Tenant, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.tenantRepo.FindTenantByID(ctx, tenantID)
}

// AddMember adds a user to the tenant with a role. Admin only.
func (s *TenantService) AddMember(ctx context.Context, tenantID string, userID string, role domain.TenantRole, actorUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, actorUserID, tenantID, domain.RoleAdmin); err != nil {
		return err
	}
	if !role.Covers(domain.RoleReadOnly) {
		return fmt.Errorf("%w: unknown role %s", apperrors.ErrValidation, role)
	}

	membership := domain.TenantMember{
		UserID:   userID,
		TenantID: tenantID,
		Role:     role,
	}
	if err := s.tenantRepo.AddMember(ctx, membership); err != nil {
		logger.Error("Failed to add member", slog.String("error", err.Error()), slog.String("tenant_id", tenantID), slog.String("target_user_id", userID))
		return fmt.Errorf("failed to add member: %w", err)
	}

	logger.Info("Member added", slog.String("tenant_id", tenantID), slog.String("target_user_id", userID), slog.String("role", string(role)))
	return nil
}

// CreateOrganization adds an issuing organization to a tenant. Admin only.
func (s *TenantService) CreateOrganization(ctx context.Context, tenantID string, req dto.CreateOrganizationRequest, actorUserID string) (*domain.Organization, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, actorUserID, tenantID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	if _, err := s.tenantRepo.FindTenantByID(ctx, tenantID); err != nil {
		return nil, err
	}

	now := time.Now()
	org := domain.Organization{
		OrganizationID: uuid.NewString(),
		TenantID:       tenantID,
		Name:           req.Name,
		Profile:        req.Profile.ToDomainProfile(),
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}

	if err := s.tenantRepo.SaveOrganization(ctx, org); err != nil {
		logger.Error("Failed to save organization", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	logger.Info("Organization created", slog.String("organization_id", org.OrganizationID), slog.String("tenant_id", tenantID))
	return &org, nil
}

// GetOrganizationByID retrieves an organization within the tenant.
func (s *TenantService) GetOrganizationByID(ctx context.Context, tenantID string, orgID string, requestingUserID string) (*domain.Organization, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	org, err := s.tenantRepo.FindOrganizationByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if org.TenantID != tenantID {
		// Cross-tenant probing looks identical to a missing organization.
		return nil, apperrors.ErrNotFound
	}
	return org, nil
}

// CheckIssuanceAllowance is the subscription collaborator check. A nil quota
// means unlimited; otherwise the count of already-issued documents must sit
// below it.
func (s *TenantService) CheckIssuanceAllowance(ctx context.Context, tenantID string) error {
	tenant, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to load tenant for allowance check: %w", err)
	}
	if tenant.IssuanceQuota == nil {
		return nil
	}

	issued, err := s.invoiceRepo.CountIssuedByTenant(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("failed to count issued documents: %w", err)
	}
	if issued >= *tenant.IssuanceQuota {
		return fmt.Errorf("%w: issuance quota of %d exhausted", apperrors.ErrPrecondition, *tenant.IssuanceQuota)
	}
	return nil
}
