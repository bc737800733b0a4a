package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/invara/invoicing_backend/internal/apperrors"
	"github.com/invara/invoicing_backend/internal/core/domain"
	portsrepo "github.com/invara/invoicing_backend/internal/core/ports/repositories"
	portssvc "github.com/invara/invoicing_backend/internal/core/ports/services"
	"github.com/invara/invoicing_backend/internal/dto"
	"github.com/invara/invoicing_backend/internal/middleware"
)

// ClientService manages the tenant's recipient directory. The live records
// here are freely editable; sealed documents carry their own frozen copies.
type ClientService struct {
	clientRepo portsrepo.ClientRepositoryFacade
	authorizer portssvc.TenantAuthorizerSvc
}

// NewClientService creates a new ClientService.
func NewClientService(cr portsrepo.ClientRepositoryFacade, authorizer portssvc.TenantAuthorizerSvc) portssvc.ClientSvcFacade {
	return &ClientService{
		clientRepo: cr,
		authorizer: authorizer,
	}
}

// Ensure ClientService implements the portssvc.ClientSvcFacade interface
var _ portssvc.ClientSvcFacade = (*ClientService)(nil)

// CreateClient adds a recipient to the tenant's directory.
func (s *ClientService) CreateClient(ctx context.Context, tenantID string, req dto.CreateClientRequest, creatorUserID string) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorizer.AuthorizeUserAction(ctx, creatorUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	now := time.Now()
	client := domain.Client{
		ClientID:           uuid.NewString(),
		TenantID:           tenantID,
		LegalName:          req.LegalName,
		TaxID:              req.TaxID,
		RegistrationNumber: req.RegistrationNumber,
		VATRegistered:      req.VATRegistered,
		AddressLine1:       req.AddressLine1,
		AddressLine2:       req.AddressLine2,
		City:               req.City,
		PostalCode:         req.PostalCode,
		Country:            req.Country,
		Email:              req.Email,
		IsActive:           true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		logger.Error("Failed to save client", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	logger.Info("Client created", slog.String("client_id", client.ClientID), slog.String("tenant_id", tenantID))
	return &client, nil
}

// GetClientByID retrieves a client within the tenant.
func (s *ClientService) GetClientByID(ctx context.Context, tenantID string, clientID string, requestingUserID string) (*domain.Client, error) {
	if err := s.authorizer.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client.TenantID != tenantID {
		return nil, apperrors.ErrNotFound
	}
	return client, nil
}

// ListClients retrieves a paginated listing of the tenant's active clients.
func (s *ClientService) ListClients(ctx context.Context, tenantID string, requestingUserID string, params dto.ListClientsParams) (*dto.ListClientsResponse, error) {
	if err := s.authorizer.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	clients, nextToken, err := s.clientRepo.ListClientsByTenant(ctx, tenantID, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListClientsResponse{
		Clients:   make([]dto.ClientResponse, len(clients)),
		NextToken: nextToken,
	}
	for i := range clients {
		resp.Clients[i] = dto.ToClientResponse(&clients[i])
	}
	return resp, nil
}

// UpdateClient edits a live client record.
func (s *ClientService) UpdateClient(ctx context.Context, tenantID string, clientID string, req dto.UpdateClientRequest, requestingUserID string) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	client, err := s.GetClientByID(ctx, tenantID, clientID, requestingUserID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	if req.LegalName != nil {
		client.LegalName = *req.LegalName
	}
	if req.TaxID != nil {
		client.TaxID = req.TaxID
	}
	if req.RegistrationNumber != nil {
		client.RegistrationNumber = req.RegistrationNumber
	}
	if req.VATRegistered != nil {
		client.VATRegistered = *req.VATRegistered
	}
	if req.AddressLine1 != nil {
		client.AddressLine1 = req.AddressLine1
	}
	if req.AddressLine2 != nil {
		client.AddressLine2 = req.AddressLine2
	}
	if req.City != nil {
		client.City = req.City
	}
	if req.PostalCode != nil {
		client.PostalCode = req.PostalCode
	}
	if req.Country != nil {
		client.Country = req.Country
	}
	if req.Email != nil {
		client.Email = req.Email
	}
	client.LastUpdatedAt = time.Now()
	client.LastUpdatedBy = requestingUserID

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		logger.Error("Failed to update client", slog.String("error", err.Error()), slog.String("client_id", clientID))
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

// DeactivateClient retires a client from the directory. Documents already
// referencing it are unaffected.
func (s *ClientService) DeactivateClient(ctx context.Context, tenantID string, clientID string, requestingUserID string) error {
	if _, err := s.GetClientByID(ctx, tenantID, clientID, requestingUserID); err != nil {
		return err
	}
	if err := s.authorizer.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return err
	}
	return s.clientRepo.DeactivateClient(ctx, clientID, requestingUserID)
}
