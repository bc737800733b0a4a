package repositories

import (
	"context"
	"time"

	"github.com/invara/invoicing_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// InvoiceReader defines read operations for invoice data. Issued invoices
// are immutable, so reads need no locking.
type InvoiceReader interface {
	// FindInvoiceByID retrieves a specific invoice by its unique identifier.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// FindInvoiceByVerificationID resolves a public verification token to an
	// invoice. Unknown tokens return ErrNotFound.
	FindInvoiceByVerificationID(ctx context.Context, verificationID string) (*domain.Invoice, error)

	// FindLineItemsByInvoiceID retrieves the invoice's line items in stored order.
	FindLineItemsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.LineItem, error)

	// ListInvoicesByTenant retrieves a paginated list of invoices for a tenant
	// using token-based pagination.
	ListInvoicesByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.Invoice, *string, error)

	// CountIssuedByTenant counts documents the tenant has issued, for the
	// quota collaborator check.
	CountIssuedByTenant(ctx context.Context, tenantID string) (int64, error)
}

// InvoiceWriter defines write operations for invoice data. Sealed-field
// writes happen only inside the issuance transaction; everything else is an
// optimistic status update guarded by the expected current status.
type InvoiceWriter interface {
	// SaveDraftInvoice persists a new draft and its line items.
	SaveDraftInvoice(ctx context.Context, invoice domain.Invoice, items []domain.LineItem) error

	// UpdateDraftInvoice replaces a draft's editable fields and line items.
	// Fails with ErrConflict if the invoice is no longer a draft.
	UpdateDraftInvoice(ctx context.Context, invoice domain.Invoice, items []domain.LineItem) error

	// DeleteDraftInvoice removes a draft and its line items. Issued invoices
	// are never deletable; the call fails with ErrConflict.
	DeleteDraftInvoice(ctx context.Context, invoiceID string) error

	// MarkIssuedInTx writes the sealed fields (number, snapshots, hash,
	// verification id, issued_at) and flips DRAFT to ISSUED inside the given
	// transaction. Returns ErrConflict if the row is no longer a draft.
	MarkIssuedInTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error

	// UpdateInvoiceStatus performs an optimistic status-only transition.
	// Returns ErrConflict when the stored status no longer matches from.
	UpdateInvoiceStatus(ctx context.Context, invoiceID string, from, to domain.InvoiceStatus, updatedBy string, updatedAt time.Time) error

	// RecordPayment adds to the paid amount and optionally flips the status,
	// guarded by the expected current status.
	RecordPayment(ctx context.Context, invoiceID string, from, to domain.InvoiceStatus, newAmountPaid decimal.Decimal, updatedBy string, updatedAt time.Time) error

	// VoidInvoiceInTx voids the invoice with a mandatory reason inside the
	// given transaction, guarded by the expected current status.
	VoidInvoiceInTx(ctx context.Context, tx pgx.Tx, invoiceID string, from domain.InvoiceStatus, reason string, updatedBy string, voidedAt time.Time) error

	// MarkCreditedInTx flips PAID to CREDITED inside the given transaction.
	// No other stored field of the invoice is touched.
	MarkCreditedInTx(ctx context.Context, tx pgx.Tx, invoiceID string, updatedBy string, updatedAt time.Time) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}

// InvoiceRepositoryWithTx extends InvoiceRepositoryFacade with transaction
// capabilities.
type InvoiceRepositoryWithTx interface {
	InvoiceRepositoryFacade
	TransactionManager
}
