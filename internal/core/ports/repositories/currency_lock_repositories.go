package repositories

import (
	"context"
	"time"

	"github.com/invara/invoicing_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// CurrencyLockRepository guards against currency drift within a tenant.
type CurrencyLockRepository interface {
	// AcquireInTx locks the tenant to the given currency on first issuance,
	// or verifies the requested currency matches the existing lock. A
	// mismatch fails with ErrPrecondition. Runs inside the issuance
	// transaction so a failed issuance never creates a lock.
	AcquireInTx(ctx context.Context, tx pgx.Tx, tenantID string, currencyCode string, lockedAt time.Time) error

	// FindLockByTenant returns the tenant's lock, or ErrNotFound before the
	// first issuance.
	FindLockByTenant(ctx context.Context, tenantID string) (*domain.CurrencyLock, error)
}
