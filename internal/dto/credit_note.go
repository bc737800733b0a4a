package dto

import (
	"time"

	"github.com/invara/invoicing_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReverseInvoiceRequest creates a compensating credit note against a paid
// invoice. Amount may be partial but never exceeds the paid amount.
type ReverseInvoiceRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Reason string          `json:"reason" binding:"required"`
}

// CreditNoteResponse is the returned shape of a credit note.
type CreditNoteResponse struct {
	CreditNoteID      string          `json:"creditNoteID"`
	OriginalInvoiceID string          `json:"originalInvoiceID"`
	DisplayNumber     string          `json:"displayNumber"`
	CurrencyCode      string          `json:"currencyCode"`
	Amount            decimal.Decimal `json:"amount"`
	Reason            string          `json:"reason"`
	IssuedAt          time.Time       `json:"issuedAt"`
	CreditNoteHash    string          `json:"creditNoteHash"`
	VerificationID    string          `json:"verificationID"`
}

// ToCreditNoteResponse converts a domain.CreditNote to its response DTO.
func ToCreditNoteResponse(cn *domain.CreditNote) CreditNoteResponse {
	return CreditNoteResponse{
		CreditNoteID:      cn.CreditNoteID,
		OriginalInvoiceID: cn.OriginalInvoiceID,
		DisplayNumber:     cn.DisplayNumber,
		CurrencyCode:      cn.CurrencyCode,
		Amount:            cn.Amount,
		Reason:            cn.Reason,
		IssuedAt:          cn.IssuedAt,
		CreditNoteHash:    cn.CreditNoteHash,
		VerificationID:    cn.VerificationID,
	}
}

// ToCreditNoteResponses converts a slice of domain credit notes.
func ToCreditNoteResponses(cns []domain.CreditNote) []CreditNoteResponse {
	responses := make([]CreditNoteResponse, len(cns))
	for i := range cns {
		responses[i] = ToCreditNoteResponse(&cns[i])
	}
	return responses
}
