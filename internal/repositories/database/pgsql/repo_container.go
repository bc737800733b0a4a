package pgsql

import (
	portsrepo "github.com/invara/invoicing_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgsql repositories over one shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		InvoiceRepo:      newPgxInvoiceRepository(pool),
		CreditNoteRepo:   newPgxCreditNoteRepository(pool),
		SequenceRepo:     newPgxSequenceRepository(pool),
		CurrencyLockRepo: newPgxCurrencyLockRepository(pool),
		ClientRepo:       newPgxClientRepository(pool),
		TenantRepo:       newPgxTenantRepository(pool),
		UserRepo:         newPgxUserRepository(pool),
		AuditRepo:        newPgxAuditRepository(pool),
		OutboxRepo:       newPgxOutboxRepository(pool),
	}
}
