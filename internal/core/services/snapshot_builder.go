package services

import "github.com/invara/invoicing_backend/internal/core/domain"

// Snapshot builders freeze a live legal identity into an owned copy at the
// moment of issuance. The copies share no pointers with their sources, so
// later profile edits or deletions cannot reach into sealed documents.

// SnapshotFromProfile freezes an issuer profile (tenant or organization).
func SnapshotFromProfile(p domain.IssuerProfile) *domain.PartySnapshot {
	s := &domain.PartySnapshot{
		SchemaVersion:      domain.SnapshotSchemaVersion,
		LegalName:          p.LegalName,
		TaxID:              p.TaxID,
		RegistrationNumber: p.RegistrationNumber,
		VATRegistered:      p.VATRegistered,
		AddressLine1:       p.AddressLine1,
		AddressLine2:       p.AddressLine2,
		City:               p.City,
		PostalCode:         p.PostalCode,
		Country:            p.Country,
		Email:              p.Email,
	}
	return s.Clone()
}

// SnapshotFromClient freezes a recipient's directory record.
func SnapshotFromClient(c *domain.Client) *domain.PartySnapshot {
	s := &domain.PartySnapshot{
		SchemaVersion:      domain.SnapshotSchemaVersion,
		LegalName:          c.LegalName,
		TaxID:              c.TaxID,
		RegistrationNumber: c.RegistrationNumber,
		VATRegistered:      c.VATRegistered,
		AddressLine1:       c.AddressLine1,
		AddressLine2:       c.AddressLine2,
		City:               c.City,
		PostalCode:         c.PostalCode,
		Country:            c.Country,
		Email:              c.Email,
	}
	return s.Clone()
}
