package models

// PartySnapshot is the stored JSONB shape of a frozen party identity.
// schemaVersion is persisted with the record so older shapes stay readable.
type PartySnapshot struct {
	SchemaVersion      int     `json:"schemaVersion"`
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
