package domain

// SnapshotSchemaVersion is the current shape of PartySnapshot. Older records
// keep the version they were sealed with; verification code matches on it.
const SnapshotSchemaVersion = 1

// PartySnapshot is a frozen, owned copy of one party's legal identity,
// embedded in the document that captured it. It holds no reference back to
// the live profile and survives later edits or deletion of that profile.
// Optional fields are nil when the profile had nothing to say, never
// placeholder values.
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

// Clone returns a deep copy with no shared pointers.
func (s *PartySnapshot) Clone() *PartySnapshot {
	if s == nil {
		return nil
	}
	out := *s
	out.TaxID = cloneStr(s.TaxID)
	out.RegistrationNumber = cloneStr(s.RegistrationNumber)
	out.AddressLine1 = cloneStr(s.AddressLine1)
	out.AddressLine2 = cloneStr(s.AddressLine2)
	out.City = cloneStr(s.City)
	out.PostalCode = cloneStr(s.PostalCode)
	out.Country = cloneStr(s.Country)
	out.Email = cloneStr(s.Email)
	return &out
}

func cloneStr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
