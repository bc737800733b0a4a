package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the persisted lifecycle state of an invoice.
type InvoiceStatus string

const (
	Draft    InvoiceStatus = "DRAFT"
	Issued   InvoiceStatus = "ISSUED"
	Sent     InvoiceStatus = "SENT"
	Viewed   InvoiceStatus = "VIEWED"
	Paid     InvoiceStatus = "PAID"
	Voided   InvoiceStatus = "VOIDED"
	Credited InvoiceStatus = "CREDITED"
)

// Invoice is the persisted invoice record. Owner is stored as two nullable
// columns guarded by a CHECK constraint (exactly one set).
type Invoice struct {
	InvoiceID   string        `json:"invoiceID"`
	TenantID    string        `json:"tenantID"`
	OwnerUserID *string       `json:"ownerUserID,omitempty"`
	OwnerOrgID  *string       `json:"ownerOrgID,omitempty"`
	ClientID    string        `json:"clientID"`
	Status      InvoiceStatus `json:"status"`

	SequenceNumber int64  `json:"sequenceNumber"`
	DisplayNumber  string `json:"displayNumber"`

	CurrencyCode   string          `json:"currencyCode"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	AmountPaid     decimal.Decimal `json:"amountPaid"`

	IssuedAt   *time.Time `json:"issuedAt,omitempty"`
	VoidedAt   *time.Time `json:"voidedAt,omitempty"`
	VoidReason *string    `json:"voidReason,omitempty"`

	IssuerSnapshot    *PartySnapshot `json:"issuerSnapshot,omitempty"`
	RecipientSnapshot *PartySnapshot `json:"recipientSnapshot,omitempty"`
	InvoiceHash       *string        `json:"invoiceHash,omitempty"`
	VerificationID    *string        `json:"verificationID,omitempty"`

	AuditFields
}

// LineItem is a persisted invoice line, immutable once its invoice is issued.
type LineItem struct {
	LineItemID      string          `json:"lineItemID"`
	InvoiceID       string          `json:"invoiceID"`
	Position        int             `json:"position"`
	Description     string          `json:"description"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	TaxRate         decimal.Decimal `json:"taxRate"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	Amount          decimal.Decimal `json:"amount"`
	AuditFields
}
