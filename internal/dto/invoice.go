package dto

import (
	"time"

	"github.com/invara/invoicing_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineItemRequest is one billable row in a draft create/update request.
type LineItemRequest struct {
	Description     string          `json:"description" binding:"required"`
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice       decimal.Decimal `json:"unitPrice" binding:"required"`
	TaxRate         decimal.Decimal `json:"taxRate"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
}

// CreateInvoiceRequest creates a new draft invoice.
type CreateInvoiceRequest struct {
	ClientID     string `json:"clientID" binding:"required"`
	CurrencyCode string `json:"currencyCode" binding:"required,currency"`
	// OwnerOrgID assigns the draft to an organization; empty means the
	// acting user owns it personally.
	OwnerOrgID string            `json:"ownerOrgID,omitempty"`
	LineItems  []LineItemRequest `json:"lineItems" binding:"required,min=1,dive"`
}

// UpdateInvoiceRequest replaces a draft's editable content.
type UpdateInvoiceRequest struct {
	ClientID     *string           `json:"clientID,omitempty"`
	CurrencyCode *string           `json:"currencyCode,omitempty" binding:"omitempty,currency"`
	LineItems    []LineItemRequest `json:"lineItems,omitempty" binding:"omitempty,min=1,dive"`
}

// VoidInvoiceRequest voids an unpaid issued invoice.
type VoidInvoiceRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// RecordPaymentRequest records a payment against an issued invoice.
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// LineItemResponse is the returned shape of a line item.
type LineItemResponse struct {
	LineItemID      string          `json:"lineItemID"`
	Position        int             `json:"position"`
	Description     string          `json:"description"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	TaxRate         decimal.Decimal `json:"taxRate"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	Amount          decimal.Decimal `json:"amount"`
}

// InvoiceResponse is the returned shape of an invoice.
type InvoiceResponse struct {
	InvoiceID      string                `json:"invoiceID"`
	TenantID       string                `json:"tenantID"`
	OwnerKind      string                `json:"ownerKind"`
	ClientID       string                `json:"clientID"`
	Status         string                `json:"status"`
	DisplayNumber  string                `json:"displayNumber,omitempty"`
	CurrencyCode   string                `json:"currencyCode"`
	Subtotal       decimal.Decimal       `json:"subtotal"`
	TaxAmount      decimal.Decimal       `json:"taxAmount"`
	DiscountAmount decimal.Decimal       `json:"discountAmount"`
	TotalAmount    decimal.Decimal       `json:"totalAmount"`
	AmountPaid     decimal.Decimal       `json:"amountPaid"`
	IssuedAt       *time.Time            `json:"issuedAt,omitempty"`
	VoidedAt       *time.Time            `json:"voidedAt,omitempty"`
	VoidReason     string                `json:"voidReason,omitempty"`
	InvoiceHash    string                `json:"invoiceHash,omitempty"`
	VerificationID string                `json:"verificationID,omitempty"`
	Issuer         *domain.PartySnapshot `json:"issuerSnapshot,omitempty"`
	Recipient      *domain.PartySnapshot `json:"recipientSnapshot,omitempty"`
	LineItems      []LineItemResponse    `json:"lineItems,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
}

// IssueInvoiceResponse is the result of a successful issuance.
type IssueInvoiceResponse struct {
	Invoice        InvoiceResponse `json:"invoice"`
	InvoiceHash    string          `json:"invoiceHash"`
	VerificationID string          `json:"verificationID"`
}

// ListInvoicesParams carries pagination parameters for invoice listing.
type ListInvoicesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListInvoicesResponse is a paginated invoice listing.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToLineItemResponse converts a domain.LineItem to its response DTO.
func ToLineItemResponse(li *domain.LineItem) LineItemResponse {
	return LineItemResponse{
		LineItemID:      li.LineItemID,
		Position:        li.Position,
		Description:     li.Description,
		Quantity:        li.Quantity,
		UnitPrice:       li.UnitPrice,
		TaxRate:         li.TaxRate,
		DiscountPercent: li.DiscountPercent,
		Amount:          li.Amount,
	}
}

// ToInvoiceResponse converts a domain.Invoice to its response DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		InvoiceID:      inv.InvoiceID,
		TenantID:       inv.TenantID,
		OwnerKind:      string(inv.Owner.Kind()),
		ClientID:       inv.ClientID,
		Status:         string(inv.Status),
		DisplayNumber:  inv.DisplayNumber,
		CurrencyCode:   inv.CurrencyCode,
		Subtotal:       inv.Subtotal,
		TaxAmount:      inv.TaxAmount,
		DiscountAmount: inv.DiscountAmount,
		TotalAmount:    inv.TotalAmount,
		AmountPaid:     inv.AmountPaid,
		IssuedAt:       inv.IssuedAt,
		VoidedAt:       inv.VoidedAt,
		VoidReason:     inv.VoidReason,
		InvoiceHash:    inv.InvoiceHash,
		VerificationID: inv.VerificationID,
		Issuer:         inv.IssuerSnapshot,
		Recipient:      inv.RecipientSnapshot,
		CreatedAt:      inv.CreatedAt,
	}
	if len(inv.LineItems) > 0 {
		resp.LineItems = make([]LineItemResponse, len(inv.LineItems))
		for i := range inv.LineItems {
			resp.LineItems[i] = ToLineItemResponse(&inv.LineItems[i])
		}
	}
	return resp
}
