package repositories

import (
	"context"

	"github.com/invara/invoicing_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AuditRepository is the audit log sink. Issuance, void and reversal each
// append exactly one entry, inside the same transaction as the state change.
type AuditRepository interface {
	// SaveEntryInTx appends an audit entry inside the caller's transaction.
	SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.AuditEntry) error

	// ListEntriesByEntity returns audit entries for an entity, newest first.
	ListEntriesByEntity(ctx context.Context, entityID string, limit int) ([]domain.AuditEntry, error)
}

// OutboxRepository records post-commit side effects. Rows are written in the
// same transaction as the state change; dispatch happens strictly after
// commit, never inline with the atomic unit.
type OutboxRepository interface {
	// SaveEventInTx appends an outbox event inside the caller's transaction.
	SaveEventInTx(ctx context.Context, tx pgx.Tx, event domain.OutboxEvent) error

	// ListPendingEvents returns undispatched events, oldest first.
	ListPendingEvents(ctx context.Context, limit int) ([]domain.OutboxEvent, error)

	// MarkEventDispatched records that an event was handed to its consumer.
	MarkEventDispatched(ctx context.Context, eventID string) error
}
