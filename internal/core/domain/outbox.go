package domain

import "time"

// OutboxEventType names post-commit side effects. Delivery (email, PDF
// rendering) is an external collaborator; the engine only records that the
// event happened, inside the same transaction as the state change.
type OutboxEventType string

const (
	EventInvoiceIssued    OutboxEventType = "invoice.issued"
	EventInvoiceVoided    OutboxEventType = "invoice.voided"
	EventCreditNoteIssued OutboxEventType = "credit_note.issued"
)

// OutboxEvent is one pending side effect, dispatched strictly after commit.
type OutboxEvent struct {
	EventID      string          `json:"eventID"` // Primary key (UUID)
	EventType    OutboxEventType `json:"eventType"`
	EntityID     string          `json:"entityID"`
	Payload      []byte          `json:"payload"` // JSON
	CreatedAt    time.Time       `json:"createdAt"`
	DispatchedAt *time.Time      `json:"dispatchedAt,omitempty"`
}
