package models

import "time"

// AuditEntry is one persisted row of the append-only audit log.
type AuditEntry struct {
	EntryID    string    `json:"entryID"`
	ActorID    string    `json:"actorID"`
	Action     string    `json:"action"`
	EntityID   string    `json:"entityID"`
	Reason     *string   `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// OutboxEvent is one persisted pending side effect.
type OutboxEvent struct {
	EventID      string     `json:"eventID"`
	EventType    string     `json:"eventType"`
	EntityID     string     `json:"entityID"`
	Payload      []byte     `json:"payload"`
	CreatedAt    time.Time  `json:"createdAt"`
	DispatchedAt *time.Time `json:"dispatchedAt,omitempty"`
}
