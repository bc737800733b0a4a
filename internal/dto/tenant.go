package dto

import (
	"github.com/invara/invoicing_backend/internal/core/domain"
)

// IssuerProfileRequest is the issuer identity carried on tenant and
// organization create/update requests.
type IssuerProfileRequest struct {
	LegalName          string  `json:"legalName" binding:"required"`
	TaxID              *string `json:"taxID,omitempty"`
	RegistrationNumber *string `json:"registrationNumber,omitempty"`
	VATRegistered      bool    `json:"vatRegistered"`
	AddressLine1       *string `json:"addressLine1,omitempty"`
	AddressLine2       *string `json:"addressLine2,omitempty"`
	City               *string `json:"city,omitempty"`
	PostalCode         *string `json:"postalCode,omitempty"`
	Country            *string `json:"country,omitempty"`
	Email              *string `json:"email,omitempty" binding:"omitempty,email"`
}

// ToDomainProfile converts the request shape to the domain profile.
func (r IssuerProfileRequest) ToDomainProfile() domain.IssuerProfile {
	return domain.IssuerProfile{
		LegalName:          r.LegalName,
		TaxID:              r.TaxID,
		RegistrationNumber: r.RegistrationNumber,
		VATRegistered:      r.VATRegistered,
		AddressLine1:       r.AddressLine1,
		AddressLine2:       r.AddressLine2,
		City:               r.City,
		PostalCode:         r.PostalCode,
		Country:            r.Country,
		Email:              r.Email,
	}
}

// CreateTenantRequest provisions a new billing environment.
type CreateTenantRequest struct {
	Name          string               `json:"name" binding:"required"`
	Profile       IssuerProfileRequest `json:"profile" binding:"required"`
	NumberPrefix  string               `json:"numberPrefix,omitempty"`
	IssuanceQuota *int64               `json:"issuanceQuota,omitempty"`
}

// CreateOrganizationRequest adds an issuing organization to a tenant.
type CreateOrganizationRequest struct {
	Name    string               `json:"name" binding:"required"`
	Profile IssuerProfileRequest `json:"profile" binding:"required"`
}

// TenantResponse is the returned shape of a tenant.
type TenantResponse struct {
	TenantID      string `json:"tenantID"`
	Name          string `json:"name"`
	NumberPrefix  string `json:"numberPrefix"`
	IssuanceQuota *int64 `json:"issuanceQuota,omitempty"`
	IsActive      bool   `json:"isActive"`
}

// OrganizationResponse is the returned shape of an organization.
type OrganizationResponse struct {
	OrganizationID string `json:"organizationID"`
	TenantID       string `json:"tenantID"`
	Name           string `json:"name"`
	IsActive       bool   `json:"isActive"`
}

// ToTenantResponse converts a domain.Tenant to its response DTO.
func ToTenantResponse(t *domain.Tenant) TenantResponse {
	return TenantResponse{
		TenantID:      t.TenantID,
		Name:          t.Name,
		NumberPrefix:  t.NumberPrefix,
		IssuanceQuota: t.IssuanceQuota,
		IsActive:      t.IsActive,
	}
}

// ToOrganizationResponse converts a domain.Organization to its response DTO.
func ToOrganizationResponse(o *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		OrganizationID: o.OrganizationID,
		TenantID:       o.TenantID,
		Name:           o.Name,
		IsActive:       o.IsActive,
	}
}
