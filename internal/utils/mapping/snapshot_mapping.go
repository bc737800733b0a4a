package mapping

import (
	"github.com/invara/invoicing_backend/internal/core/domain"
	"github.com/invara/invoicing_backend/internal/models"
)

// ToModelSnapshot converts a domain PartySnapshot to its stored shape.
func ToModelSnapshot(d *domain.PartySnapshot) *models.PartySnapshot {
	if d == nil {
		return nil
	}
	return &models.PartySnapshot{
		SchemaVersion:      d.SchemaVersion,
		LegalName:          d.LegalName,
		TaxID:              d.TaxID,
		RegistrationNumber: d.RegistrationNumber,
		VATRegistered:      d.VATRegistered,
		AddressLine1:       d.AddressLine1,
		AddressLine2:       d.AddressLine2,
		City:               d.City,
		PostalCode:         d.PostalCode,
		Country:            d.Country,
		Email:              d.Email,
	}
}

// ToDomainSnapshot converts a stored PartySnapshot back to the domain shape.
func ToDomainSnapshot(m *models.PartySnapshot) *domain.PartySnapshot {
	if m == nil {
		return nil
	}
	return &domain.PartySnapshot{
		SchemaVersion:      m.SchemaVersion,
		LegalName:          m.LegalName,
		TaxID:              m.TaxID,
		RegistrationNumber: m.RegistrationNumber,
		VATRegistered:      m.VATRegistered,
		AddressLine1:       m.AddressLine1,
		AddressLine2:       m.AddressLine2,
		City:               m.City,
		PostalCode:         m.PostalCode,
		Country:            m.Country,
		Email:              m.Email,
	}
}

// ToModelIssuerProfile converts a domain issuer profile to its stored shape.
func ToModelIssuerProfile(d domain.IssuerProfile) models.IssuerProfile {
	return models.IssuerProfile{
		LegalName:          d.LegalName,
		TaxID:              d.TaxID,
		RegistrationNumber: d.RegistrationNumber,
		VATRegistered:      d.VATRegistered,
		AddressLine1:       d.AddressLine1,
		AddressLine2:       d.AddressLine2,
		City:               d.City,
		PostalCode:         d.PostalCode,
		Country:            d.Country,
		Email:              d.Email,
	}
}

// ToDomainIssuerProfile converts a stored issuer profile to the domain shape.
func ToDomainIssuerProfile(m models.IssuerProfile) domain.IssuerProfile {
	return domain.IssuerProfile{
		LegalName:          m.LegalName,
		TaxID:              m.TaxID,
		RegistrationNumber: m.RegistrationNumber,
		VATRegistered:      m.VATRegistered,
		AddressLine1:       m.AddressLine1,
		AddressLine2:       m.AddressLine2,
		City:               m.City,
		PostalCode:         m.PostalCode,
		Country:            m.Country,
		Email:              m.Email,
	}
}
