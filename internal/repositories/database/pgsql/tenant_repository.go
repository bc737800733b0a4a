package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/invara/invoicing_backend/internal/apperrors"
	"github.com/invara/invoicing_backend/internal/core/domain"
	portsrepo "github.com/invara/invoicing_backend/internal/core/ports/repositories"
	"github.com/invara/invoicing_backend/internal/models"
	"github.com/invara/invoicing_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTenantRepository struct {
	pool *pgxpool.Pool
}

// newPgxTenantRepository creates a new repository for tenants, memberships
// and organizations.
func newPgxTenantRepository(pool *pgxpool.Pool) portsrepo.TenantRepositoryFacade {
	return &PgxTenantRepository{pool: pool}
}

// Ensure PgxTenantRepository implements portsrepo.TenantRepositoryFacade
var _ portsrepo.TenantRepositoryFacade = (*PgxTenantRepository)(nil)

// SaveTenant inserts a new tenant. The issuer profile lands in a JSONB column.
func (r *PgxTenantRepository) SaveTenant(ctx context.Context, tenant domain.Tenant) error {
	m := mapping.ToModelTenant(tenant)

	profileJSON, err := json.Marshal(m.Profile)
	if err != nil {
		return fmt.Errorf("failed to encode issuer profile: %w", err)
	}

	query := `
		INSERT INTO tenants (tenant_id, name, profile, issuance_quota, number_prefix, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = r.pool.Exec(ctx, query,
		m.TenantID,
		m.Name,
		profileJSON,
		m.IssuanceQuota,
		m.NumberPrefix,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: tenant with ID %s already exists", apperrors.ErrDuplicate, m.TenantID)
		}
		return fmt.Errorf("failed to save tenant %s: %w", m.TenantID, err)
	}
	return nil
}

// FindTenantByID retrieves a tenant by its ID.
func (r *PgxTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	query := `
		SELECT tenant_id, name, profile, issuance_quota, number_prefix, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM tenants
		WHERE tenant_id = $1;
	`
	var m models.Tenant
	var profileJSON []byte
	err := r.pool.QueryRow(ctx, query, tenantID).Scan(
		&m.TenantID,
		&m.Name,
		&profileJSON,
		&m.IssuanceQuota,
		&m.NumberPrefix,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tenant by ID %s: %w", tenantID, err)
	}

	if err := json.Unmarshal(profileJSON, &m.Profile); err != nil {
		return nil, fmt.Errorf("failed to decode issuer profile for tenant %s: %w", tenantID, err)
	}

	d := mapping.ToDomainTenant(m)
	return &d, nil
}

// UpdateTenant updates a tenant's editable fields, the live issuer profile
// included. Issued documents are untouched: they carry frozen snapshots.
func (r *PgxTenantRepository) UpdateTenant(ctx context.Context, tenant domain.Tenant) error {
	m := mapping.ToModelTenant(tenant)

	profileJSON, err := json.Marshal(m.Profile)
	if err != nil {
		return fmt.Errorf("failed to encode issuer profile: %w", err)
	}

	query := `
		UPDATE tenants
		SET name = $2, profile = $3, issuance_quota = $4, number_prefix = $5, is_active = $6, last_updated_at = $7, last_updated_by = $8
		WHERE tenant_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		m.TenantID,
		m.Name,
		profileJSON,
		m.IssuanceQuota,
		m.NumberPrefix,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update tenant %s: %w", m.TenantID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AddMember links a user to a tenant with a role, or updates the role if the
// membership already exists.
func (r *PgxTenantRepository) AddMember(ctx context.Context, member domain.TenantMember) error {
	query := `
		INSERT INTO tenant_members (user_id, tenant_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, tenant_id) DO UPDATE SET role = EXCLUDED.role;
	`
	_, err := r.pool.Exec(ctx, query, member.UserID, member.TenantID, string(member.Role))
	if err != nil {
		return fmt.Errorf("failed to add member %s to tenant %s: %w", member.UserID, member.TenantID, err)
	}
	return nil
}

// FindMemberRole returns the user's role in the tenant, or ErrForbidden if
// the user is not a member. Not-a-member and no-such-tenant look the same to
// the caller on purpose.
func (r *PgxTenantRepository) FindMemberRole(ctx context.Context, userID string, tenantID string) (domain.TenantRole, error) {
	query := `SELECT role FROM tenant_members WHERE user_id = $1 AND tenant_id = $2;`

	var role string
	err := r.pool.QueryRow(ctx, query, userID, tenantID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrForbidden
		}
		return "", fmt.Errorf("failed to find role for user %s in tenant %s: %w", userID, tenantID, err)
	}
	return domain.TenantRole(role), nil
}

// SaveOrganization inserts a new organization within a tenant.
func (r *PgxTenantRepository) SaveOrganization(ctx context.Context, org domain.Organization) error {
	m := mapping.ToModelOrganization(org)

	profileJSON, err := json.Marshal(m.Profile)
	if err != nil {
		return fmt.Errorf("failed to encode issuer profile: %w", err)
	}

	query := `
		INSERT INTO organizations (organization_id, tenant_id, name, profile, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = r.pool.Exec(ctx, query,
		m.OrganizationID,
		m.TenantID,
		m.Name,
		profileJSON,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: organization with ID %s already exists", apperrors.ErrDuplicate, m.OrganizationID)
		}
		return fmt.Errorf("failed to save organization %s: %w", m.OrganizationID, err)
	}
	return nil
}

// FindOrganizationByID retrieves an organization by its ID.
func (r *PgxTenantRepository) FindOrganizationByID(ctx context.Context, orgID string) (*domain.Organization, error) {
	query := `
		SELECT organization_id, tenant_id, name, profile, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM organizations
		WHERE organization_id = $1;
	`
	var m models.Organization
	var profileJSON []byte
	err := r.pool.QueryRow(ctx, query, orgID).Scan(
		&m.OrganizationID,
		&m.TenantID,
		&m.Name,
		&profileJSON,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find organization by ID %s: %w", orgID, err)
	}

	if err := json.Unmarshal(profileJSON, &m.Profile); err != nil {
		return nil, fmt.Errorf("failed to decode issuer profile for organization %s: %w", orgID, err)
	}

	d := mapping.ToDomainOrganization(m)
	return &d, nil
}
