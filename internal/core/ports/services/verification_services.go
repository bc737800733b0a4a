package services

import (
	"context"

	"github.com/invara/invoicing_backend/internal/dto"
)

// VerificationSvcFacade is the verification registry: it mints opaque public
// tokens at issuance and resolves them for the unauthenticated portal.
type VerificationSvcFacade interface {
	// MintToken produces a cryptographically random, URL-safe, globally
	// unique token with no derivable relationship to any document field.
	MintToken() (string, error)

	// Verify resolves a token to a redacted document summary and recomputes
	// the integrity hash. Malformed and unknown tokens both yield the
	// identical not-verified shape; no error is ever surfaced to the caller.
	Verify(ctx context.Context, token string) dto.VerifyResponse
}
