package models

// Tenant is the persisted billing environment.
type Tenant struct {
	TenantID      string        `json:"tenantID"`
	Name          string        `json:"name"`
	Profile       IssuerProfile `json:"profile"`
	IssuanceQuota *int64        `json:"issuanceQuota,omitempty"`
	NumberPrefix  string        `json:"numberPrefix"`
	IsActive      bool          `json:"isActive"`
	AuditFields
}

// IssuerProfile is the stored JSONB shape of the live issuer identity.
type IssuerProfile struct {
	LegalName          string  `json:"legalName"`
	TaxID              *string `json:"taxID,omitempty"`
	RegistrationNumber *string `json:"registrationNumber,omitempty"`
	VATRegistered      bool    `json:"vatRegistered"`
	AddressLine1       *string `json:"addressLine1,omitempty"`
	AddressLine2       *string `json:"addressLine2,omitempty"`
	City               *string `json:"city,omitempty"`
	PostalCode         *string `json:"postalCode,omitempty"`
	Country            *string `json:"country,omitempty"`
	Email              *string `json:"email,omitempty"`
}

// TenantRole defines the persisted membership role values.
type TenantRole string

// TenantMember links a user to a tenant with a role.
type TenantMember struct {
	UserID   string     `json:"userID"`
	TenantID string     `json:"tenantID"`
	Role     TenantRole `json:"role"`
}

// Organization is an optional issuing entity within a tenant.
type Organization struct {
	OrganizationID string        `json:"organizationID"`
	TenantID       string        `json:"tenantID"`
	Name           string        `json:"name"`
	Profile        IssuerProfile `json:"profile"`
	IsActive       bool          `json:"isActive"`
	AuditFields
}
