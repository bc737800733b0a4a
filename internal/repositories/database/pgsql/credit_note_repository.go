package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/invara/invoicing_backend/internal/apperrors"
	"github.com/invara/invoicing_backend/internal/core/domain"
	portsrepo "github.com/invara/invoicing_backend/internal/core/ports/repositories"
	"github.com/invara/invoicing_backend/internal/models"
	"github.com/invara/invoicing_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxCreditNoteRepository struct {
	pool *pgxpool.Pool
}

// newPgxCreditNoteRepository creates a new repository for credit note data.
func newPgxCreditNoteRepository(pool *pgxpool.Pool) portsrepo.CreditNoteRepositoryFacade {
	return &PgxCreditNoteRepository{pool: pool}
}

// Ensure PgxCreditNoteRepository implements portsrepo.CreditNoteRepositoryFacade
var _ portsrepo.CreditNoteRepositoryFacade = (*PgxCreditNoteRepository)(nil)

const creditNoteColumns = `credit_note_id, tenant_id, original_invoice_id, sequence_number, display_number, currency_code, amount, reason, issued_at, issuer_snapshot, recipient_snapshot, credit_note_hash, verification_id, created_at, created_by, last_updated_at, last_updated_by`

func scanCreditNote(row rowScanner) (models.CreditNote, error) {
	var m models.CreditNote
	var issuerJSON, recipientJSON []byte

	err := row.Scan(
		&m.CreditNoteID,
		&m.TenantID,
		&m.OriginalInvoiceID,
		&m.SequenceNumber,
		&m.DisplayNumber,
		&m.CurrencyCode,
		&m.Amount,
		&m.Reason,
		&m.IssuedAt,
		&issuerJSON,
		&recipientJSON,
		&m.CreditNoteHash,
		&m.VerificationID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.CreditNote{}, err
	}

	if m.IssuerSnapshot, err = unmarshalSnapshot(issuerJSON); err != nil {
		return models.CreditNote{}, err
	}
	if m.RecipientSnapshot, err = unmarshalSnapshot(recipientJSON); err != nil {
		return models.CreditNote{}, err
	}
	return m, nil
}

// FindCreditNoteByID retrieves a credit note by its ID.
func (r *PgxCreditNoteRepository) FindCreditNoteByID(ctx context.Context, creditNoteID string) (*domain.CreditNote, error) {
	query := `SELECT ` + creditNoteColumns + ` FROM credit_notes WHERE credit_note_id = $1;`

	m, err := scanCreditNote(r.pool.QueryRow(ctx, query, creditNoteID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find credit note by ID %s: %w", creditNoteID, err)
	}

	d := mapping.ToDomainCreditNote(m)
	return &d, nil
}

// FindCreditNoteByVerificationID resolves a public verification token to a
// credit note.
func (r *PgxCreditNoteRepository) FindCreditNoteByVerificationID(ctx context.Context, verificationID string) (*domain.CreditNote, error) {
	query := `SELECT ` + creditNoteColumns + ` FROM credit_notes WHERE verification_id = $1;`

	m, err := scanCreditNote(r.pool.QueryRow(ctx, query, verificationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find credit note by verification ID: %w", err)
	}

	d := mapping.ToDomainCreditNote(m)
	return &d, nil
}

// FindCreditNotesByInvoiceID lists credit notes referencing an invoice,
// oldest first.
func (r *PgxCreditNoteRepository) FindCreditNotesByInvoiceID(ctx context.Context, invoiceID string) ([]domain.CreditNote, error) {
	query := `SELECT ` + creditNoteColumns + ` FROM credit_notes WHERE original_invoice_id = $1 ORDER BY issued_at;`

	rows, err := r.pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query credit notes for invoice %s: %w", invoiceID, err)
	}
	defer rows.Close()

	notes := []models.CreditNote{}
	for rows.Next() {
		m, err := scanCreditNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan credit note row for invoice %s: %w", invoiceID, err)
		}
		notes = append(notes, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating credit note rows for invoice %s: %w", invoiceID, err)
	}

	return mapping.ToDomainCreditNoteSlice(notes), nil
}

// SumCreditedAmountByInvoiceID returns the total already credited against an
// invoice, zero if none.
func (r *PgxCreditNoteRepository) SumCreditedAmountByInvoiceID(ctx context.Context, invoiceID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM credit_notes WHERE original_invoice_id = $1;`

	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, invoiceID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum credited amount for invoice %s: %w", invoiceID, err)
	}
	return total, nil
}

// SaveCreditNoteInTx persists a sealed credit note inside the reversal
// transaction. Credit notes are append-only; there is no update path.
func (r *PgxCreditNoteRepository) SaveCreditNoteInTx(ctx context.Context, tx pgx.Tx, creditNote domain.CreditNote) error {
	m := mapping.ToModelCreditNote(creditNote)

	issuerJSON, err := marshalSnapshot(m.IssuerSnapshot)
	if err != nil {
		return fmt.Errorf("failed to encode issuer snapshot: %w", err)
	}
	recipientJSON, err := marshalSnapshot(m.RecipientSnapshot)
	if err != nil {
		return fmt.Errorf("failed to encode recipient snapshot: %w", err)
	}

	query := `
		INSERT INTO credit_notes (` + creditNoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err = tx.Exec(ctx, query,
		m.CreditNoteID,
		m.TenantID,
		m.OriginalInvoiceID,
		m.SequenceNumber,
		m.DisplayNumber,
		m.CurrencyCode,
		m.Amount,
		m.Reason,
		m.IssuedAt,
		issuerJSON,
		recipientJSON,
		m.CreditNoteHash,
		m.VerificationID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: credit note with ID %s already exists", apperrors.ErrDuplicate, m.CreditNoteID)
		}
		return fmt.Errorf("failed to save credit note %s: %w", m.CreditNoteID, err)
	}
	return nil
}
