package domain

// Client is a billable recipient in a tenant's directory. The live record is
// freely editable; issued documents keep their own frozen copy of it.
type Client struct {
	ClientID           string  `json:"clientID"` // Primary key (UUID)
	TenantID           string  `json:"tenantID"` // FK -> tenants
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
	IsActive           bool    `json:"isActive"`
	AuditFields
}
