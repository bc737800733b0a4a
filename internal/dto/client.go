package dto

import (
	"github.com/invara/invoicing_backend/internal/core/domain"
)

// CreateClientRequest adds a recipient to the tenant's directory.
type CreateClientRequest struct {
	LegalName          string  `json:"legalName" binding:"required"`
	TaxID              *string `json:"taxID,omitempty"`
	RegistrationNumber *string `json:"registrationNumber,omitempty"`
	VATRegistered      bool    `json:"vatRegistered"`
	AddressLine1       *string `json:"addressLine1,omitempty"`
	AddressLine2       *string `json:"addressLine2,omitempty"`
	City               *string `json:"city,omitempty"`
	PostalCode         *string `json:"postalCode,omitempty"`
	Country            *string `json:"country,omitempty"`
	Email              *string `json:"email,omitempty" binding:"omitempty,email"`
}

// UpdateClientRequest edits a live client record. Issued documents keep
// their frozen copies regardless.
type UpdateClientRequest struct {
	LegalName          *string `json:"legalName,omitempty"`
	TaxID              *string `json:"taxID,omitempty"`
	RegistrationNumber *string `json:"registrationNumber,omitempty"`
	VATRegistered      *bool   `json:"vatRegistered,omitempty"`
	AddressLine1       *string `json:"addressLine1,omitempty"`
	AddressLine2       *string `json:"addressLine2,omitempty"`
	City               *string `json:"city,omitempty"`
	PostalCode         *string `json:"postalCode,omitempty"`
	Country            *string `json:"country,omitempty"`
	Email              *string `json:"email,omitempty" binding:"omitempty,email"`
}

// ClientResponse is the returned shape of a client.
type ClientResponse struct {
	ClientID      string  `json:"clientID"`
	LegalName     string  `json:"legalName"`
	TaxID         *string `json:"taxID,omitempty"`
	VATRegistered bool    `json:"vatRegistered"`
	Country       *string `json:"country,omitempty"`
	Email         *string `json:"email,omitempty"`
	IsActive      bool    `json:"isActive"`
}

// ListClientsParams carries pagination parameters for client listing.
type ListClientsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListClientsResponse is a paginated client listing.
type ListClientsResponse struct {
	Clients   []ClientResponse `json:"clients"`
	NextToken *string          `json:"nextToken,omitempty"`
}

// ToClientResponse converts a domain.Client to its response DTO.
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:      c.ClientID,
		LegalName:     c.LegalName,
		TaxID:         c.TaxID,
		VATRegistered: c.VATRegistered,
		Country:       c.Country,
		Email:         c.Email,
		IsActive:      c.IsActive,
	}
}
