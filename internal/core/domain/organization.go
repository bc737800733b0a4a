package domain

// Organization is an optional issuing entity within a tenant. Invoices owned
// by an organization draw their issuer snapshot and number sequence from it
// instead of the tenant.
type Organization struct {
	OrganizationID string        `json:"organizationID"` // Primary key (UUID)
	TenantID       string        `json:"tenantID"`       // FK -> tenants
	Name           string        `json:"name"`
	Profile        IssuerProfile `json:"profile"`
	IsActive       bool          `json:"isActive"`
	AuditFields
}
