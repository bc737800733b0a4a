package mapping

import (
	"github.com/invara/invoicing_backend/internal/core/domain"
	"github.com/invara/invoicing_backend/internal/models"
)

// ToModelClient converts a domain Client to a model Client.
func ToModelClient(d domain.Client) models.Client {
	return models.Client{
		ClientID:           d.ClientID,
		TenantID:           d.TenantID,
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
		IsActive:           d.IsActive,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainClient converts a model Client to a domain Client.
func ToDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID:           m.ClientID,
		TenantID:           m.TenantID,
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
		IsActive:           m.IsActive,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainClientSlice converts a slice of model Clients.
func ToDomainClientSlice(ms []models.Client) []domain.Client {
	ds := make([]domain.Client, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainClient(m)
	}
	return ds
}
