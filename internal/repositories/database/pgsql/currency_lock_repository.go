package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/invara/invoicing_backend/internal/apperrors"
	"github.com/invara/invoicing_backend/internal/core/domain"
	portsrepo "github.com/invara/invoicing_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCurrencyLockRepository struct {
	pool *pgxpool.Pool
}

// newPgxCurrencyLockRepository creates a new repository for tenant currency locks.
func newPgxCurrencyLockRepository(pool *pgxpool.Pool) portsrepo.CurrencyLockRepository {
	return &PgxCurrencyLockRepository{pool: pool}
}

// Ensure PgxCurrencyLockRepository implements portsrepo.CurrencyLockRepository
var _ portsrepo.CurrencyLockRepository = (*PgxCurrencyLockRepository)(nil)

// AcquireInTx locks the tenant to the given currency on first issuance, or
// verifies the requested currency against the existing lock. The no-op
// DO UPDATE takes the row lock and returns the stored currency either way,
// so two first issuances in different currencies serialize and one loses.
func (r *PgxCurrencyLockRepository) AcquireInTx(ctx context.Context, tx pgx.Tx, tenantID string, currencyCode string, lockedAt time.Time) error {
	query := `
		INSERT INTO currency_locks (tenant_id, currency_code, locked_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (tenant_id)
		DO UPDATE SET tenant_id = EXCLUDED.tenant_id
		RETURNING currency_code;
	`
	var lockedCurrency string
	if err := tx.QueryRow(ctx, query, tenantID, currencyCode, lockedAt).Scan(&lockedCurrency); err != nil {
		return fmt.Errorf("failed to acquire currency lock for tenant %s: %w", tenantID, err)
	}

	if lockedCurrency != currencyCode {
		return fmt.Errorf("%w: tenant %s is locked to currency %s, got %s", apperrors.ErrPrecondition, tenantID, lockedCurrency, currencyCode)
	}
	return nil
}

// FindLockByTenant returns the tenant's currency lock, or ErrNotFound before
// the first issuance.
func (r *PgxCurrencyLockRepository) FindLockByTenant(ctx context.Context, tenantID string) (*domain.CurrencyLock, error) {
	query := `SELECT tenant_id, currency_code, locked_at FROM currency_locks WHERE tenant_id = $1;`

	var lock domain.CurrencyLock
	var lockedAt time.Time
	err := r.pool.QueryRow(ctx, query, tenantID).Scan(&lock.TenantID, &lock.CurrencyCode, &lockedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find currency lock for tenant %s: %w", tenantID, err)
	}

	lock.Locked = true
	lock.LockedAt = &lockedAt
	return &lock, nil
}
