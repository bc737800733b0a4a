package pgsql

import (
	"context"
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
)

type PgxClientRepository struct {
	pool *pgxpool.Pool
}

// newPgxClientRepository creates a new repository for the client directory.
func newPgxClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{pool: pool}
}

// Ensure PgxClientRepository implements portsrepo.ClientRepositoryFacade
var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

const clientColumns = `client_id, tenant_id, legal_name, tax_id, registration_number, vat_registered, address_line1, address_line2, city, postal_code, country, email, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanClient(row rowScanner) (models.Client, error) {
	var m models.Client
	err := row.Scan(
		&m.ClientID,
		&m.TenantID,
		&m.LegalName,
		&m.TaxID,
		&m.RegistrationNumber,
		&m.VATRegistered,
		&m.AddressLine1,
		&m.AddressLine2,
		&m.City,
		&m.PostalCode,
		&m.Country,
		&m.Email,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveClient inserts a new client record.
func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)

	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.pool.Exec(ctx, query,
		m.ClientID,
		m.TenantID,
		m.LegalName,
		m.TaxID,
		m.RegistrationNumber,
		m.VATRegistered,
		m.AddressLine1,
		m.AddressLine2,
		m.City,
		m.PostalCode,
		m.Country,
		m.Email,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: client with ID %s already exists", apperrors.ErrDuplicate, m.ClientID)
		}
		return fmt.Errorf("failed to save client %s: %w", m.ClientID, err)
	}
	return nil
}

// FindClientByID retrieves a client by its ID.
func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE client_id = $1;`

	m, err := scanClient(r.pool.QueryRow(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client by ID %s: %w", clientID, err)
	}

	d := mapping.ToDomainClient(m)
	return &d, nil
}

// ListClientsByTenant retrieves a paginated list of active clients for a
// tenant, ordered by name, using keyset pagination on (legal_name, client_id).
func (r *PgxClientRepository) ListClientsByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.Client, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + clientColumns + ` FROM clients WHERE tenant_id = $1 AND is_active = TRUE`
	args := []any{tenantID}

	if nextToken != nil && *nextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken)
		if err != nil || len(fields) != 2 {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		query += ` AND (legal_name, client_id) > ($2, $3)`
		args = append(args, fields[0], fields[1])
	}

	query += fmt.Sprintf(` ORDER BY legal_name, client_id LIMIT %d;`, limit+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query clients for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	clients := []models.Client{}
	for rows.Next() {
		m, err := scanClient(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan client row for tenant %s: %w", tenantID, err)
		}
		clients = append(clients, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating client rows for tenant %s: %w", tenantID, err)
	}

	var newToken *string
	if len(clients) > limit {
		clients = clients[:limit]
		last := clients[len(clients)-1]
		token := pagination.EncodeMultiFieldToken(last.LegalName, last.ClientID)
		newToken = &token
	}

	return mapping.ToDomainClientSlice(clients), newToken, nil
}

// UpdateClient updates a client's editable fields. Issued documents are
// untouched: they carry their own snapshots.
func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)

	query := `
		UPDATE clients
		SET legal_name = $2, tax_id = $3, registration_number = $4, vat_registered = $5, address_line1 = $6, address_line2 = $7, city = $8, postal_code = $9, country = $10, email = $11, last_updated_at = $12, last_updated_by = $13
		WHERE client_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		m.ClientID,
		m.LegalName,
		m.TaxID,
		m.RegistrationNumber,
		m.VATRegistered,
		m.AddressLine1,
		m.AddressLine2,
		m.City,
		m.PostalCode,
		m.Country,
		m.Email,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update client %s: %w", m.ClientID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateClient marks a client as inactive. Existing invoices keep
// referencing it; new drafts may not.
func (r *PgxClientRepository) DeactivateClient(ctx context.Context, clientID string, updatedBy string) error {
	query := `
		UPDATE clients
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE client_id = $1 AND is_active = TRUE;
	`
	cmdTag, err := r.pool.Exec(ctx, query, clientID, time.Now().UTC(), updatedBy)
	if err != nil {
		return fmt.Errorf("failed to deactivate client %s: %w", clientID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		if _, findErr := r.FindClientByID(ctx, clientID); errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		// Exists but already inactive.
		return apperrors.ErrValidation
	}
	return nil
}
