package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus indicates where an invoice sits in its lifecycle.
type InvoiceStatus string

const (
	StatusDraft    InvoiceStatus = "DRAFT"
	StatusIssued   InvoiceStatus = "ISSUED"
	StatusSent     InvoiceStatus = "SENT"
	StatusViewed   InvoiceStatus = "VIEWED"
	StatusPaid     InvoiceStatus = "PAID"
	StatusVoided   InvoiceStatus = "VOIDED"
	StatusCredited InvoiceStatus = "CREDITED"
)

// allowedTransitions is the single source of truth for legal status changes.
// DRAFT additionally allows deletion, which is not a transition.
var allowedTransitions = map[InvoiceStatus][]InvoiceStatus{
	StatusDraft:    {StatusIssued},
	StatusIssued:   {StatusSent, StatusViewed, StatusPaid, StatusVoided},
	StatusSent:     {StatusViewed, StatusPaid, StatusVoided},
	StatusViewed:   {StatusPaid, StatusVoided},
	StatusPaid:     {StatusCredited},
	StatusVoided:   {},
	StatusCredited: {},
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to InvoiceStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions exist from the status.
func (s InvoiceStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// Invoice is the central entity. Once issued, every field through
// VerificationID plus the financial fields and line items is write-once;
// the persistence layer enforces this independently of this package.
type Invoice struct {
	InvoiceID string        `json:"invoiceID"` // Primary key (UUID)
	TenantID  string        `json:"tenantID"`  // FK -> tenants
	Owner     Owner         `json:"-"`         // Personal user or organization, exactly one
	ClientID  string        `json:"clientID"`  // FK -> clients (the recipient)
	Status    InvoiceStatus `json:"status"`

	// Assigned at issuance.
	SequenceNumber int64  `json:"sequenceNumber"` // Gap-free per owner scope
	DisplayNumber  string `json:"displayNumber"`  // e.g. "INV-0001"

	CurrencyCode   string          `json:"currencyCode"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	AmountPaid     decimal.Decimal `json:"amountPaid"`

	IssuedAt   *time.Time `json:"issuedAt,omitempty"`
	VoidedAt   *time.Time `json:"voidedAt,omitempty"`
	VoidReason string     `json:"voidReason,omitempty"`

	// Immutable-on-issue fields.
	IssuerSnapshot    *PartySnapshot `json:"issuerSnapshot,omitempty"`
	RecipientSnapshot *PartySnapshot `json:"recipientSnapshot,omitempty"`
	InvoiceHash       string         `json:"invoiceHash,omitempty"`    // 64-hex SHA-256
	VerificationID    string         `json:"verificationID,omitempty"` // Opaque public lookup token

	LineItems []LineItem `json:"lineItems,omitempty"` // Often loaded separately
	AuditFields
}

// IsDraft reports whether the invoice is still freely editable.
func (i *Invoice) IsDraft() bool {
	return i.Status == StatusDraft
}

// Outstanding returns the paid amount not yet reversed by credit notes.
func (i *Invoice) Outstanding(creditedSoFar decimal.Decimal) decimal.Decimal {
	return i.AmountPaid.Sub(creditedSoFar)
}

// FormatDisplayNumber renders a document number as prefix + zero-padded
// sequence, minimum four digits.
func FormatDisplayNumber(prefix string, sequence int64) string {
	return fmt.Sprintf("%s-%04d", prefix, sequence)
}
