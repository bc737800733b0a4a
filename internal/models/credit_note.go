package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditNote is the persisted compensating record; append-only, never updated.
type CreditNote struct {
	CreditNoteID      string          `json:"creditNoteID"`
	TenantID          string          `json:"tenantID"`
	OriginalInvoiceID string          `json:"originalInvoiceID"`
	SequenceNumber    int64           `json:"sequenceNumber"`
	DisplayNumber     string          `json:"displayNumber"`
	CurrencyCode      string          `json:"currencyCode"`
	Amount            decimal.Decimal `json:"amount"`
	Reason            string          `json:"reason"`
	IssuedAt          time.Time       `json:"issuedAt"`
	IssuerSnapshot    *PartySnapshot  `json:"issuerSnapshot,omitempty"`
	RecipientSnapshot *PartySnapshot  `json:"recipientSnapshot,omitempty"`
	CreditNoteHash    string          `json:"creditNoteHash"`
	VerificationID    string          `json:"verificationID"`
	AuditFields
}
