package models

// Client is a persisted billable recipient.
type Client struct {
	ClientID           string  `json:"clientID"`
	TenantID           string  `json:"tenantID"`
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
