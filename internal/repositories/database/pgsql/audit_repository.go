package pgsql

import (
	"context"
	"fmt"

	"github.com/invara/invoicing_backend/internal/core/domain"
	portsrepo "github.com/invara/invoicing_backend/internal/core/ports/repositories"
	"github.com/invara/invoicing_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditRepository struct {
	pool *pgxpool.Pool
}

// newPgxAuditRepository creates a new repository for the audit log.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepository {
	return &PgxAuditRepository{pool: pool}
}

// Ensure PgxAuditRepository implements portsrepo.AuditRepository
var _ portsrepo.AuditRepository = (*PgxAuditRepository)(nil)

// SaveEntryInTx appends an audit entry inside the caller's transaction, so
// the entry commits or rolls back with the state change it records.
func (r *PgxAuditRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.AuditEntry) error {
	query := `
		INSERT INTO audit_entries (entry_id, actor_id, action, entity_id, reason, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := tx.Exec(ctx, query,
		entry.EntryID,
		entry.ActorID,
		string(entry.Action),
		entry.EntityID,
		entry.Reason,
		entry.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save audit entry %s: %w", entry.EntryID, err)
	}
	return nil
}

// ListEntriesByEntity returns audit entries for an entity, newest first.
func (r *PgxAuditRepository) ListEntriesByEntity(ctx context.Context, entityID string, limit int) ([]domain.AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT entry_id, actor_id, action, entity_id, reason, occurred_at
		FROM audit_entries
		WHERE entity_id = $1
		ORDER BY occurred_at DESC
		LIMIT $2;
	`
	rows, err := r.pool.Query(ctx, query, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries for entity %s: %w", entityID, err)
	}
	defer rows.Close()

	entries := []domain.AuditEntry{}
	for rows.Next() {
		var m models.AuditEntry
		if err := rows.Scan(&m.EntryID, &m.ActorID, &m.Action, &m.EntityID, &m.Reason, &m.OccurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry row: %w", err)
		}
		entries = append(entries, domain.AuditEntry{
			EntryID:    m.EntryID,
			ActorID:    m.ActorID,
			Action:     domain.AuditAction(m.Action),
			EntityID:   m.EntityID,
			Reason:     m.Reason,
			OccurredAt: m.OccurredAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit entry rows: %w", err)
	}

	return entries, nil
}

type PgxOutboxRepository struct {
	pool *pgxpool.Pool
}

// newPgxOutboxRepository creates a new repository for the side-effect outbox.
func newPgxOutboxRepository(pool *pgxpool.Pool) portsrepo.OutboxRepository {
	return &PgxOutboxRepository{pool: pool}
}

// Ensure PgxOutboxRepository implements portsrepo.OutboxRepository
var _ portsrepo.OutboxRepository = (*PgxOutboxRepository)(nil)

// SaveEventInTx appends an outbox event inside the caller's transaction.
// Dispatch happens strictly after commit, never inline.
func (r *PgxOutboxRepository) SaveEventInTx(ctx context.Context, tx pgx.Tx, event domain.OutboxEvent) error {
	query := `
		INSERT INTO outbox_events (event_id, event_type, entity_id, payload, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := tx.Exec(ctx, query,
		event.EventID,
		string(event.EventType),
		event.EntityID,
		event.Payload,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save outbox event %s: %w", event.EventID, err)
	}
	return nil
}

// ListPendingEvents returns undispatched events, oldest first.
func (r *PgxOutboxRepository) ListPendingEvents(ctx context.Context, limit int) ([]domain.OutboxEvent, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT event_id, event_type, entity_id, payload, created_at, dispatched_at
		FROM outbox_events
		WHERE dispatched_at IS NULL
		ORDER BY created_at
		LIMIT $1;
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending outbox events: %w", err)
	}
	defer rows.Close()

	events := []domain.OutboxEvent{}
	for rows.Next() {
		var m models.OutboxEvent
		if err := rows.Scan(&m.EventID, &m.EventType, &m.EntityID, &m.Payload, &m.CreatedAt, &m.DispatchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan outbox event row: %w", err)
		}
		events = append(events, domain.OutboxEvent{
			EventID:      m.EventID,
			EventType:    domain.OutboxEventType(m.EventType),
			EntityID:     m.EntityID,
			Payload:      m.Payload,
			CreatedAt:    m.CreatedAt,
			DispatchedAt: m.DispatchedAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating outbox event rows: %w", err)
	}

	return events, nil
}

// MarkEventDispatched records that an event was handed to its consumer.
func (r *PgxOutboxRepository) MarkEventDispatched(ctx context.Context, eventID string) error {
	query := `UPDATE outbox_events SET dispatched_at = NOW() WHERE event_id = $1 AND dispatched_at IS NULL;`

	_, err := r.pool.Exec(ctx, query, eventID)
	if err != nil {
		return fmt.Errorf("failed to mark outbox event %s dispatched: %w", eventID, err)
	}
	return nil
}
