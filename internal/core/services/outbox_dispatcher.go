package services

import (
	"context"
	"log/slog"
	"time"

	portsrepo "github.com/invara/invoicing_backend/internal/core/ports/repositories"
)

// OutboxDispatcher drains the outbox strictly after commit. Actual delivery
// (email, PDF rendering, webhooks) belongs to external consumers; the
// dispatcher's contract is only that nothing is handed over before the
// transaction that produced it committed.
type OutboxDispatcher struct {
	outboxRepo portsrepo.OutboxRepository
	logger     *slog.Logger
	interval   time.Duration
	batchSize  int
}

// NewOutboxDispatcher creates a dispatcher polling at the given interval.
func NewOutboxDispatcher(or portsrepo.OutboxRepository, logger *slog.Logger, interval time.Duration) *OutboxDispatcher {
	return &OutboxDispatcher{
		outboxRepo: or,
		logger:     logger,
		interval:   interval,
		batchSize:  100,
	}
}

// Run polls for pending events until the context is cancelled.
func (d *OutboxDispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.drain(ctx)
		}
	}
}

// drain hands one batch of pending events to the consumer side. An event
// that fails to mark stays pending and is retried on the next tick, so
// consumers must tolerate duplicates.
func (d *OutboxDispatcher) drain(ctx context.Context) {
	events, err := d.outboxRepo.ListPendingEvents(ctx, d.batchSize)
	if err != nil {
		d.logger.Error("Failed to list pending outbox events", slog.String("error", err.Error()))
		return
	}

	for _, event := range events {
		d.logger.Info("Dispatching outbox event",
			slog.String("event_id", event.EventID),
			slog.String("event_type", string(event.EventType)),
			slog.String("entity_id", event.EntityID),
		)
		if err := d.outboxRepo.MarkEventDispatched(ctx, event.EventID); err != nil {
			d.logger.Error("Failed to mark outbox event dispatched", slog.String("event_id", event.EventID), slog.String("error", err.Error()))
		}
	}
}
