package services

import (
	"context"

	"github.com/invara/invoicing_backend/internal/core/domain"
	"github.com/invara/invoicing_backend/internal/dto"
)

// CreditNoteSvcFacade is the reversal engine: it compensates a paid invoice
// with a new, independently sealed record and never rewrites the original.
type CreditNoteSvcFacade interface {
	// ReverseInvoice creates a credit note against a paid invoice and flips
	// the invoice to CREDITED in the same transaction.
	ReverseInvoice(ctx context.Context, tenantID string, invoiceID string, req dto.ReverseInvoiceRequest, actorUserID string) (*domain.CreditNote, error)

	// GetCreditNoteByID retrieves a specific credit note.
	GetCreditNoteByID(ctx context.Context, tenantID string, creditNoteID string, requestingUserID string) (*domain.CreditNote, error)

	// ListCreditNotesByInvoice lists credit notes referencing an invoice.
	ListCreditNotesByInvoice(ctx context.Context, tenantID string, invoiceID string, requestingUserID string) ([]domain.CreditNote, error)
}
