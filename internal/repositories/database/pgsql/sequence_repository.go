package pgsql

import (
	"context"
	"fmt"

	portsrepo "github.com/invara/invoicing_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSequenceRepository struct {
	pool *pgxpool.Pool
}

// newPgxSequenceRepository creates a new repository for document number counters.
func newPgxSequenceRepository(pool *pgxpool.Pool) portsrepo.SequenceRepository {
	return &PgxSequenceRepository{pool: pool}
}

// Ensure PgxSequenceRepository implements portsrepo.SequenceRepository
var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

// NextSequenceInTx atomically increments and returns the counter for the
// given scope and kind. The upsert takes a row lock, so concurrent issuers in
// the same scope serialize here; a rolled-back transaction releases the
// number, which keeps committed sequences gap-free.
func (r *PgxSequenceRepository) NextSequenceInTx(ctx context.Context, tx pgx.Tx, scope string, kind string) (int64, error) {
	query := `
		INSERT INTO invoice_sequences (scope_key, kind, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (scope_key, kind)
		DO UPDATE SET last_value = invoice_sequences.last_value + 1
		RETURNING last_value;
	`
	var next int64
	if err := tx.QueryRow(ctx, query, scope, kind).Scan(&next); err != nil {
		return 0, fmt.Errorf("failed to allocate %s sequence for scope %s: %w", kind, scope, err)
	}
	return next, nil
}
