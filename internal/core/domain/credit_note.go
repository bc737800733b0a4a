package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditNote is an append-only compensating record against exactly one
// issued invoice. It carries its own number, seal and verification token and
// never edits the original.
type CreditNote struct {
	CreditNoteID      string          `json:"creditNoteID"`      // Primary key (UUID)
	TenantID          string          `json:"tenantID"`          // FK -> tenants
	OriginalInvoiceID string          `json:"originalInvoiceID"` // FK -> invoices
	SequenceNumber    int64           `json:"sequenceNumber"`    // Gap-free per owner scope, own counter
	DisplayNumber     string          `json:"displayNumber"`     // e.g. "CN-0001"
	CurrencyCode      string          `json:"currencyCode"`
	Amount            decimal.Decimal `json:"amount"`
	Reason            string          `json:"reason"` // Mandatory, non-empty
	IssuedAt          time.Time       `json:"issuedAt"`

	// Copied verbatim from the original invoice, not re-snapshotted.
	IssuerSnapshot    *PartySnapshot `json:"issuerSnapshot,omitempty"`
	RecipientSnapshot *PartySnapshot `json:"recipientSnapshot,omitempty"`

	CreditNoteHash string `json:"creditNoteHash"` // 64-hex SHA-256
	VerificationID string `json:"verificationID"` // Opaque public lookup token
	AuditFields
}
