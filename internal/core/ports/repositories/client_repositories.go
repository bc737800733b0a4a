package repositories

import (
	"context"

	"github.com/invara/invoicing_backend/internal/core/domain"
)

// ClientRepositoryFacade defines persistence operations for the recipient
// directory. Live client records stay freely editable; issued documents keep
// their own snapshots.
type ClientRepositoryFacade interface {
	SaveClient(ctx context.Context, client domain.Client) error
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)
	ListClientsByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.Client, *string, error)
	UpdateClient(ctx context.Context, client domain.Client) error
	DeactivateClient(ctx context.Context, clientID string, updatedBy string) error
}
