package services

import (
	"context"

	"github.com/invara/invoicing_backend/internal/core/domain"
	"github.com/invara/invoicing_backend/internal/dto"
)

// ClientSvcFacade manages the tenant's recipient directory.
type ClientSvcFacade interface {
	CreateClient(ctx context.Context, tenantID string, req dto.CreateClientRequest, creatorUserID string) (*domain.Client, error)
	GetClientByID(ctx context.Context, tenantID string, clientID string, requestingUserID string) (*domain.Client, error)
	ListClients(ctx context.Context, tenantID string, requestingUserID string, params dto.ListClientsParams) (*dto.ListClientsResponse, error)
	UpdateClient(ctx context.Context, tenantID string, clientID string, req dto.UpdateClientRequest, requestingUserID string) (*domain.Client, error)
	DeactivateClient(ctx context.Context, tenantID string, clientID string, requestingUserID string) error
}
