package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/invara/invoicing_backend/internal/apperrors"
	"github.com/invara/invoicing_backend/internal/core/domain"
	portsrepo "github.com/invara/invoicing_backend/internal/core/ports/repositories"
	"github.com/invara/invoicing_backend/internal/models"
	"github.com/invara/invoicing_backend/internal/utils/mapping"
	"github.com/invara/invoicing_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryWithTx {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxInvoiceRepository implements portsrepo.InvoiceRepositoryWithTx
var _ portsrepo.InvoiceRepositoryWithTx = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `invoice_id, tenant_id, owner_user_id, owner_org_id, client_id, status, sequence_number, display_number, currency_code, subtotal, tax_amount, discount_amount, total_amount, amount_paid, issued_at, voided_at, void_reason, issuer_snapshot, recipient_snapshot, invoice_hash, verification_id, created_at, created_by, last_updated_at, last_updated_by`

const lineItemColumns = `line_item_id, invoice_id, position, description, quantity, unit_price, tax_rate, discount_percent, amount, created_at, created_by, last_updated_at, last_updated_by`

// rowScanner covers both pgx.Row and pgx.Rows for the shared scan helper.
type rowScanner interface {
	Scan(dest ...any) error
}

// marshalSnapshot encodes a party snapshot for a JSONB column, NULL when absent.
func marshalSnapshot(s *models.PartySnapshot) ([]byte, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func unmarshalSnapshot(raw []byte) (*models.PartySnapshot, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var s models.PartySnapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to decode stored snapshot: %w", err)
	}
	return &s, nil
}

func scanInvoice(row rowScanner) (models.Invoice, error) {
	var m models.Invoice
	var issuerJSON, recipientJSON []byte

	err := row.Scan(
		&m.InvoiceID,
		&m.TenantID,
		&m.OwnerUserID,
		&m.OwnerOrgID,
		&m.ClientID,
		&m.Status,
		&m.SequenceNumber,
		&m.DisplayNumber,
		&m.CurrencyCode,
		&m.Subtotal,
		&m.TaxAmount,
		&m.DiscountAmount,
		&m.TotalAmount,
		&m.AmountPaid,
		&m.IssuedAt,
		&m.VoidedAt,
		&m.VoidReason,
		&issuerJSON,
		&recipientJSON,
		&m.InvoiceHash,
		&m.VerificationID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Invoice{}, err
	}

	if m.IssuerSnapshot, err = unmarshalSnapshot(issuerJSON); err != nil {
		return models.Invoice{}, err
	}
	if m.RecipientSnapshot, err = unmarshalSnapshot(recipientJSON); err != nil {
		return models.Invoice{}, err
	}
	return m, nil
}

// FindInvoiceByID retrieves an invoice by its ID.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`

	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice by ID %s: %w", invoiceID, err)
	}

	d, err := mapping.ToDomainInvoice(m)
	if err != nil {
		return nil, fmt.Errorf("invalid stored invoice %s: %w", invoiceID, err)
	}
	return &d, nil
}

// FindInvoiceByVerificationID resolves a public verification token to an invoice.
func (r *PgxInvoiceRepository) FindInvoiceByVerificationID(ctx context.Context, verificationID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE verification_id = $1;`

	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, verificationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice by verification ID: %w", err)
	}

	d, err := mapping.ToDomainInvoice(m)
	if err != nil {
		return nil, fmt.Errorf("invalid stored invoice %s: %w", m.InvoiceID, err)
	}
	return &d, nil
}

// FindLineItemsByInvoiceID retrieves the invoice's line items in stored order.
func (r *PgxInvoiceRepository) FindLineItemsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.LineItem, error) {
	query := `SELECT ` + lineItemColumns + ` FROM invoice_line_items WHERE invoice_id = $1 ORDER BY position;`

	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query line items for invoice %s: %w", invoiceID, err)
	}
	defer rows.Close()

	items := []models.LineItem{}
	for rows.Next() {
		var m models.LineItem
		err := rows.Scan(
			&m.LineItemID,
			&m.InvoiceID,
			&m.Position,
			&m.Description,
			&m.Quantity,
			&m.UnitPrice,
			&m.TaxRate,
			&m.DiscountPercent,
			&m.Amount,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line item row: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line item rows: %w", err)
	}

	return mapping.ToDomainLineItemSlice(items), nil
}

// ListInvoicesByTenant retrieves a paginated list of invoices for a tenant,
// newest first, using keyset pagination on (created_at, invoice_id).
func (r *PgxInvoiceRepository) ListInvoicesByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE tenant_id = $1`
	args := []any{tenantID}

	if nextToken != nil && *nextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken)
		if err != nil || len(fields) != 2 {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		cursorTime, err := time.Parse(time.RFC3339Nano, fields[0])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		query += ` AND (created_at, invoice_id) < ($2, $3)`
		args = append(args, cursorTime, fields[1])
	}

	// Fetch one extra row to decide whether a next page exists.
	query += fmt.Sprintf(` ORDER BY created_at DESC, invoice_id DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query invoices for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan invoice row for tenant %s: %w", tenantID, err)
		}
		d, err := mapping.ToDomainInvoice(m)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid stored invoice %s: %w", m.InvoiceID, err)
		}
		invoices = append(invoices, d)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating invoice rows for tenant %s: %w", tenantID, err)
	}

	var newToken *string
	if len(invoices) > limit {
		invoices = invoices[:limit]
		last := invoices[len(invoices)-1]
		token := pagination.EncodeMultiFieldToken(last.CreatedAt.Format(time.RFC3339Nano), last.InvoiceID)
		newToken = &token
	}

	return invoices, newToken, nil
}

// CountIssuedByTenant counts documents the tenant has issued, invoices and
// credit notes both, for the quota allowance check.
func (r *PgxInvoiceRepository) CountIssuedByTenant(ctx context.Context, tenantID string) (int64, error) {
	query := `
		SELECT (SELECT COUNT(*) FROM invoices WHERE tenant_id = $1 AND issued_at IS NOT NULL)
		     + (SELECT COUNT(*) FROM credit_notes WHERE tenant_id = $1);
	`
	var count int64
	if err := r.Pool.QueryRow(ctx, query, tenantID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count issued documents for tenant %s: %w", tenantID, err)
	}
	return count, nil
}

// insertLineItemsInTx batch-inserts line items for an invoice.
func insertLineItemsInTx(ctx context.Context, tx pgx.Tx, items []models.LineItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO invoice_line_items (` + lineItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query,
			item.LineItemID,
			item.InvoiceID,
			item.Position,
			item.Description,
			item.Quantity,
			item.UnitPrice,
			item.TaxRate,
			item.DiscountPercent,
			item.Amount,
			item.CreatedAt,
			item.CreatedBy,
			item.LastUpdatedAt,
			item.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to insert line item %s: %w", items[i].LineItemID, err)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close line item batch: %w", err)
	}
	return batchErr
}

// SaveDraftInvoice persists a new draft invoice and its line items atomically.
func (r *PgxInvoiceRepository) SaveDraftInvoice(ctx context.Context, invoice domain.Invoice, items []domain.LineItem) error {
	m := mapping.ToModelInvoice(invoice)

	issuerJSON, err := marshalSnapshot(m.IssuerSnapshot)
	if err != nil {
		return fmt.Errorf("failed to encode issuer snapshot: %w", err)
	}
	recipientJSON, err := marshalSnapshot(m.RecipientSnapshot)
	if err != nil {
		return fmt.Errorf("failed to encode recipient snapshot: %w", err)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25);
	`
	_, err = tx.Exec(ctx, query,
		m.InvoiceID,
		m.TenantID,
		m.OwnerUserID,
		m.OwnerOrgID,
		m.ClientID,
		m.Status,
		m.SequenceNumber,
		m.DisplayNumber,
		m.CurrencyCode,
		m.Subtotal,
		m.TaxAmount,
		m.DiscountAmount,
		m.TotalAmount,
		m.AmountPaid,
		m.IssuedAt,
		m.VoidedAt,
		m.VoidReason,
		issuerJSON,
		recipientJSON,
		m.InvoiceHash,
		m.VerificationID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: invoice with ID %s already exists", apperrors.ErrDuplicate, m.InvoiceID)
		}
		return fmt.Errorf("failed to save invoice %s: %w", m.InvoiceID, err)
	}

	modelItems := make([]models.LineItem, len(items))
	for i, item := range items {
		modelItems[i] = mapping.ToModelLineItem(item)
	}
	if err := insertLineItemsInTx(ctx, tx, modelItems); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateDraftInvoice replaces a draft's editable fields and its line items.
// The status guard makes the write a no-op once the invoice leaves DRAFT.
func (r *PgxInvoiceRepository) UpdateDraftInvoice(ctx context.Context, invoice domain.Invoice, items []domain.LineItem) error {
	m := mapping.ToModelInvoice(invoice)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		UPDATE invoices
		SET client_id = $2, currency_code = $3, subtotal = $4, tax_amount = $5, discount_amount = $6, total_amount = $7, last_updated_at = $8, last_updated_by = $9
		WHERE invoice_id = $1 AND status = $10;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.InvoiceID,
		m.ClientID,
		m.CurrencyCode,
		m.Subtotal,
		m.TaxAmount,
		m.DiscountAmount,
		m.TotalAmount,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		models.Draft,
	)
	if err != nil {
		return fmt.Errorf("failed to update draft invoice %s: %w", m.InvoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.classifyMissedWrite(ctx, m.InvoiceID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_line_items WHERE invoice_id = $1;`, m.InvoiceID); err != nil {
		return fmt.Errorf("failed to clear line items for invoice %s: %w", m.InvoiceID, err)
	}

	modelItems := make([]models.LineItem, len(items))
	for i, item := range items {
		modelItems[i] = mapping.ToModelLineItem(item)
	}
	if err := insertLineItemsInTx(ctx, tx, modelItems); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteDraftInvoice removes a draft and its line items. Line items go with
// the invoice via ON DELETE CASCADE.
func (r *PgxInvoiceRepository) DeleteDraftInvoice(ctx context.Context, invoiceID string) error {
	query := `DELETE FROM invoices WHERE invoice_id = $1 AND status = $2;`

	cmdTag, err := r.Pool.Exec(ctx, query, invoiceID, models.Draft)
	if err != nil {
		return fmt.Errorf("failed to delete draft invoice %s: %w", invoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.classifyMissedWrite(ctx, invoiceID)
	}
	return nil
}

// classifyMissedWrite turns a zero-rows-affected guarded write into either
// ErrNotFound (no such invoice) or ErrConflict (status guard failed).
func (r *PgxInvoiceRepository) classifyMissedWrite(ctx context.Context, invoiceID string) error {
	var status models.InvoiceStatus
	err := r.Pool.QueryRow(ctx, `SELECT status FROM invoices WHERE invoice_id = $1;`, invoiceID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check invoice status for %s: %w", invoiceID, err)
	}
	return fmt.Errorf("%w: invoice %s is %s", apperrors.ErrConflict, invoiceID, status)
}

// MarkIssuedInTx writes the sealed fields and flips DRAFT to ISSUED inside
// the issuance transaction. The status guard rejects concurrent issuance of
// the same draft.
func (r *PgxInvoiceRepository) MarkIssuedInTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)

	issuerJSON, err := marshalSnapshot(m.IssuerSnapshot)
	if err != nil {
		return fmt.Errorf("failed to encode issuer snapshot: %w", err)
	}
	recipientJSON, err := marshalSnapshot(m.RecipientSnapshot)
	if err != nil {
		return fmt.Errorf("failed to encode recipient snapshot: %w", err)
	}

	query := `
		UPDATE invoices
		SET status = $2, sequence_number = $3, display_number = $4, subtotal = $5, tax_amount = $6, discount_amount = $7, total_amount = $8, issued_at = $9, issuer_snapshot = $10, recipient_snapshot = $11, invoice_hash = $12, verification_id = $13, last_updated_at = $14, last_updated_by = $15
		WHERE invoice_id = $1 AND status = $16;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.InvoiceID,
		models.Issued,
		m.SequenceNumber,
		m.DisplayNumber,
		m.Subtotal,
		m.TaxAmount,
		m.DiscountAmount,
		m.TotalAmount,
		m.IssuedAt,
		issuerJSON,
		recipientJSON,
		m.InvoiceHash,
		m.VerificationID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		models.Draft,
	)
	if err != nil {
		return fmt.Errorf("failed to mark invoice %s issued: %w", m.InvoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: invoice %s is no longer a draft", apperrors.ErrConflict, m.InvoiceID)
	}
	return nil
}

// UpdateInvoiceStatus performs an optimistic status-only transition.
func (r *PgxInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoiceID string, from, to domain.InvoiceStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE invoices
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE invoice_id = $1 AND status = $5;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, invoiceID, models.InvoiceStatus(to), updatedAt, updatedBy, models.InvoiceStatus(from))
	if err != nil {
		return fmt.Errorf("failed to update status of invoice %s: %w", invoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.classifyMissedWrite(ctx, invoiceID)
	}
	return nil
}

// RecordPayment sets the new paid amount and optionally flips the status,
// guarded by the expected current status.
func (r *PgxInvoiceRepository) RecordPayment(ctx context.Context, invoiceID string, from, to domain.InvoiceStatus, newAmountPaid decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE invoices
		SET amount_paid = $2, status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE invoice_id = $1 AND status = $6;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, invoiceID, newAmountPaid, models.InvoiceStatus(to), updatedAt, updatedBy, models.InvoiceStatus(from))
	if err != nil {
		return fmt.Errorf("failed to record payment on invoice %s: %w", invoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.classifyMissedWrite(ctx, invoiceID)
	}
	return nil
}

// VoidInvoiceInTx voids the invoice with a mandatory reason inside the given
// transaction.
func (r *PgxInvoiceRepository) VoidInvoiceInTx(ctx context.Context, tx pgx.Tx, invoiceID string, from domain.InvoiceStatus, reason string, updatedBy string, voidedAt time.Time) error {
	query := `
		UPDATE invoices
		SET status = $2, void_reason = $3, voided_at = $4, last_updated_at = $4, last_updated_by = $5
		WHERE invoice_id = $1 AND status = $6;
	`
	cmdTag, err := tx.Exec(ctx, query, invoiceID, models.Voided, reason, voidedAt, updatedBy, models.InvoiceStatus(from))
	if err != nil {
		return fmt.Errorf("failed to void invoice %s: %w", invoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: invoice %s is no longer %s", apperrors.ErrConflict, invoiceID, from)
	}
	return nil
}

// MarkCreditedInTx flips PAID to CREDITED inside the reversal transaction.
func (r *PgxInvoiceRepository) MarkCreditedInTx(ctx context.Context, tx pgx.Tx, invoiceID string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE invoices
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE invoice_id = $1 AND status = $5;
	`
	cmdTag, err := tx.Exec(ctx, query, invoiceID, models.Credited, updatedAt, updatedBy, models.Paid)
	if err != nil {
		return fmt.Errorf("failed to mark invoice %s credited: %w", invoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: invoice %s is not PAID", apperrors.ErrConflict, invoiceID)
	}
	return nil
}
