package mapping

import (
	"github.com/invara/invoicing_backend/internal/core/domain"
	"github.com/invara/invoicing_backend/internal/models"
)

// ToModelTenant converts a domain Tenant to a model Tenant.
func ToModelTenant(d domain.Tenant) models.Tenant {
	return models.Tenant{
		TenantID:      d.TenantID,
		Name:          d.Name,
		Profile:       ToModelIssuerProfile(d.Profile),
		IssuanceQuota: d.IssuanceQuota,
		NumberPrefix:  d.NumberPrefix,
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTenant converts a model Tenant to a domain Tenant.
func ToDomainTenant(m models.Tenant) domain.Tenant {
	return domain.Tenant{
		TenantID:      m.TenantID,
		Name:          m.Name,
		Profile:       ToDomainIssuerProfile(m.Profile),
		IssuanceQuota: m.IssuanceQuota,
		NumberPrefix:  m.NumberPrefix,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelOrganization converts a domain Organization to a model Organization.
func ToModelOrganization(d domain.Organization) models.Organization {
	return models.Organization{
		OrganizationID: d.OrganizationID,
		TenantID:       d.TenantID,
		Name:           d.Name,
		Profile:        ToModelIssuerProfile(d.Profile),
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrganization converts a model Organization to a domain Organization.
func ToDomainOrganization(m models.Organization) domain.Organization {
	return domain.Organization{
		OrganizationID: m.OrganizationID,
		TenantID:       m.TenantID,
		Name:           m.Name,
		Profile:        ToDomainIssuerProfile(m.Profile),
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
