package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Document kinds with independent number sequences per owner scope.
const (
	SequenceKindInvoice    = "INV"
	SequenceKindCreditNote = "CN"
)

// SequenceRepository allocates gap-free, monotonically increasing document
// numbers. Allocation only happens inside the caller's issuance transaction:
// the counter row lock serializes concurrent issuers in the same scope, and
// a rollback returns the number, so committed sequences stay gap-free.
type SequenceRepository interface {
	// NextSequenceInTx atomically increments and returns the counter for the
	// given scope and document kind.
	NextSequenceInTx(ctx context.Context, tx pgx.Tx, scope string, kind string) (int64, error)
}
