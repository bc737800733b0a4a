package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// VerificationSummary is the curated, redacted subset of a sealed document
// disclosed to unauthenticated verifiers. Never internal ids, never the full
// snapshot payload.
type VerificationSummary struct {
	DocumentType   string          `json:"documentType"` // "invoice" or "credit_note"
	Number         string          `json:"number"`
	IssuerName     string          `json:"issuerName"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	CurrencyCode   string          `json:"currencyCode"`
	Status         string          `json:"status"`
	IssuedAt       *time.Time      `json:"issuedAt,omitempty"`
	IntegrityValid bool            `json:"integrityValid"`
}

// VerifyResponse is the public verification portal result. Malformed and
// unknown tokens produce the identical not-verified shape.
type VerifyResponse struct {
	Verified bool                 `json:"verified"`
	Summary  *VerificationSummary `json:"summary,omitempty"`
}

// NotVerified is the uniform response for any token that does not resolve.
func NotVerified() VerifyResponse {
	return VerifyResponse{Verified: false}
}
