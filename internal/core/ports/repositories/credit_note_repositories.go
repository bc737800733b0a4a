package repositories

import (
	"context"

	"github.com/invara/invoicing_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// CreditNoteReader defines read operations for credit note data.
type CreditNoteReader interface {
	// FindCreditNoteByID retrieves a specific credit note.
	FindCreditNoteByID(ctx context.Context, creditNoteID string) (*domain.CreditNote, error)

	// FindCreditNoteByVerificationID resolves a public verification token to
	// a credit note. Unknown tokens return ErrNotFound.
	FindCreditNoteByVerificationID(ctx context.Context, verificationID string) (*domain.CreditNote, error)

	// FindCreditNotesByInvoiceID lists credit notes referencing an invoice.
	FindCreditNotesByInvoiceID(ctx context.Context, invoiceID string) ([]domain.CreditNote, error)

	// SumCreditedAmountByInvoiceID returns the total already credited against
	// an invoice, zero if none.
	SumCreditedAmountByInvoiceID(ctx context.Context, invoiceID string) (decimal.Decimal, error)
}

// CreditNoteWriter defines write operations for credit note data. Credit
// notes are append-only: there is no update.
type CreditNoteWriter interface {
	// SaveCreditNoteInTx persists a sealed credit note inside the caller's
	// reversal transaction.
	SaveCreditNoteInTx(ctx context.Context, tx pgx.Tx, creditNote domain.CreditNote) error
}

// CreditNoteRepositoryFacade combines all credit-note repository interfaces.
type CreditNoteRepositoryFacade interface {
	CreditNoteReader
	CreditNoteWriter
}
