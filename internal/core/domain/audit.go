package domain

import "time"

// AuditAction names the engine operations that must each emit exactly one
// audit entry.
type AuditAction string

const (
	ActionInvoiceIssued   AuditAction = "invoice.issued"
	ActionInvoiceVoided   AuditAction = "invoice.voided"
	ActionInvoiceCredited AuditAction = "invoice.credited"
)

// AuditEntry is one row in the append-only audit log sink.
type AuditEntry struct {
	EntryID    string      `json:"entryID"` // Primary key (UUID)
	ActorID    string      `json:"actorID"`
	Action     AuditAction `json:"action"`
	EntityID   string      `json:"entityID"`
	Reason     *string     `json:"reason,omitempty"`
	OccurredAt time.Time   `json:"occurredAt"`
}
