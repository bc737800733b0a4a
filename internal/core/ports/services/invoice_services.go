package services

import (
	"context"

	"github.com/invara/invoicing_backend/internal/core/domain"
	"github.com/invara/invoicing_backend/internal/dto"
)

// InvoiceSvcFacade is the lifecycle controller: the only path through which
// an invoice changes status. No caller writes a status field directly.
type InvoiceSvcFacade interface {
	// CreateDraft creates a freely editable draft invoice.
	CreateDraft(ctx context.Context, tenantID string, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error)

	// GetInvoiceByID retrieves an invoice with its line items.
	GetInvoiceByID(ctx context.Context, tenantID string, invoiceID string, requestingUserID string) (*domain.Invoice, error)

	// ListInvoices retrieves a paginated invoice listing for a tenant.
	ListInvoices(ctx context.Context, tenantID string, requestingUserID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error)

	// UpdateDraft replaces a draft's editable content. Fails on non-drafts.
	UpdateDraft(ctx context.Context, tenantID string, invoiceID string, req dto.UpdateInvoiceRequest, requestingUserID string) (*domain.Invoice, error)

	// DeleteDraft deletes a draft. Issued invoices are never deletable.
	DeleteDraft(ctx context.Context, tenantID string, invoiceID string, requestingUserID string) error

	// IssueInvoice runs the atomic issuance unit: sequence, snapshots, seal,
	// verification token, currency lock, sealed write, audit entry.
	IssueInvoice(ctx context.Context, tenantID string, invoiceID string, actorUserID string) (*dto.IssueInvoiceResponse, error)

	// MarkSent records delivery of an issued invoice.
	MarkSent(ctx context.Context, tenantID string, invoiceID string, actorUserID string) (*domain.Invoice, error)

	// MarkViewed records that the recipient opened the invoice.
	MarkViewed(ctx context.Context, tenantID string, invoiceID string, actorUserID string) (*domain.Invoice, error)

	// RecordPayment applies a payment; the invoice flips to PAID once fully
	// covered.
	RecordPayment(ctx context.Context, tenantID string, invoiceID string, req dto.RecordPaymentRequest, actorUserID string) (*domain.Invoice, error)

	// VoidInvoice voids an unpaid issued invoice with a mandatory reason.
	VoidInvoice(ctx context.Context, tenantID string, invoiceID string, req dto.VoidInvoiceRequest, actorUserID string) error
}
