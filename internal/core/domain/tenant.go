package domain

// Tenant is an isolated billing environment: clients, invoices, sequences
// and the currency lock are all scoped to it.
type Tenant struct {
	TenantID string `json:"tenantID"` // Primary key (UUID)
	Name     string `json:"name"`
	// Issuer identity used for snapshots on personal-owned invoices.
	Profile IssuerProfile `json:"profile"`
	// IssuanceQuota limits how many documents the tenant may issue; nil
	// means unlimited. Enforced by the subscription collaborator check.
	IssuanceQuota *int64 `json:"issuanceQuota,omitempty"`
	NumberPrefix  string `json:"numberPrefix"` // Invoice number prefix, default "INV"
	IsActive      bool   `json:"isActive"`
	AuditFields
}

// IssuerProfile is the live legal identity a snapshot is built from.
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

// TenantRole defines the possible roles a user can have within a tenant.
type TenantRole string

const (
	RoleAdmin    TenantRole = "ADMIN"
	RoleMember   TenantRole = "MEMBER"
	RoleReadOnly TenantRole = "READONLY"
	RoleRemoved  TenantRole = "REMOVED"
)

// hierarchy of roles for authorization checks; higher covers lower.
var roleRank = map[TenantRole]int{
	RoleReadOnly: 1,
	RoleMember:   2,
	RoleAdmin:    3,
}

// Covers reports whether the role grants at least the required role.
func (r TenantRole) Covers(required TenantRole) bool {
	return roleRank[r] >= roleRank[required] && roleRank[r] > 0
}

// TenantMember represents the membership of a user in a tenant.
type TenantMember struct {
	UserID   string     `json:"userID"`
	TenantID string     `json:"tenantID"`
	Role     TenantRole `json:"role"`
}
