package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/invara/invoicing_backend/internal/apperrors"
	"github.com/invara/invoicing_backend/internal/core/domain"
	portsrepo "github.com/invara/invoicing_backend/internal/core/ports/repositories"
	portssvc "github.com/invara/invoicing_backend/internal/core/ports/services"
	"github.com/invara/invoicing_backend/internal/core/seal"
	"github.com/invara/invoicing_backend/internal/dto"
	"github.com/invara/invoicing_backend/internal/middleware"
	"github.com/invara/invoicing_backend/internal/utils"
)

// verificationTokenBytes yields 43-character base64url tokens.
const verificationTokenBytes = 32

// VerificationService is the verification registry. It mints the opaque
// public tokens attached to sealed documents and resolves them for the
// unauthenticated portal.
type VerificationService struct {
	invoiceRepo    portsrepo.InvoiceReader
	creditNoteRepo portsrepo.CreditNoteReader
}

// NewVerificationService creates a new VerificationService.
func NewVerificationService(ir portsrepo.InvoiceReader, cnr portsrepo.CreditNoteReader) portssvc.VerificationSvcFacade {
	return &VerificationService{
		invoiceRepo:    ir,
		creditNoteRepo: cnr,
	}
}

// Ensure VerificationService implements the portssvc.VerificationSvcFacade interface
var _ portssvc.VerificationSvcFacade = (*VerificationService)(nil)

// MintToken produces a cryptographically random, URL-safe token. The token
// carries no information: it relates to its document only through the
// stored association.
func (s *VerificationService) MintToken() (string, error) {
	token, err := utils.GenerateURLSafeToken(verificationTokenBytes)
	if err != nil {
		return "", fmt.Errorf("failed to mint verification token: %w", err)
	}
	return token, nil
}

// Verify resolves a token to a redacted summary and recomputes the seal.
// Every failure mode that is not a resolved document yields the identical
// not-verified shape, so callers cannot distinguish malformed from unknown
// tokens, and the endpoint leaks nothing enumerable.
func (s *VerificationService) Verify(ctx context.Context, token string) dto.VerifyResponse {
	logger := middleware.GetLoggerFromCtx(ctx)

	if token == "" || len(token) > 128 {
		return dto.NotVerified()
	}

	inv, err := s.invoiceRepo.FindInvoiceByVerificationID(ctx, token)
	if err == nil {
		items, itemsErr := s.invoiceRepo.FindLineItemsByInvoiceID(ctx, inv.InvoiceID)
		if itemsErr != nil {
			logger.Error("Failed to load line items during verification", slog.String("error", itemsErr.Error()))
			return dto.NotVerified()
		}
		inv.LineItems = items

		intact := seal.VerifyInvoice(inv)
		if !intact {
			logger.Warn("Invoice failed integrity recheck", slog.String("invoice_id", inv.InvoiceID))
		}
		return dto.VerifyResponse{
			Verified: intact,
			Summary: &dto.VerificationSummary{
				DocumentType:   "invoice",
				Number:         inv.DisplayNumber,
				IssuerName:     issuerName(inv.IssuerSnapshot),
				TotalAmount:    inv.TotalAmount,
				CurrencyCode:   inv.CurrencyCode,
				Status:         string(inv.Status),
				IssuedAt:       inv.IssuedAt,
				IntegrityValid: intact,
			},
		}
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Verification lookup failed", slog.String("error", err.Error()))
		return dto.NotVerified()
	}

	cn, err := s.creditNoteRepo.FindCreditNoteByVerificationID(ctx, token)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Verification lookup failed", slog.String("error", err.Error()))
		}
		return dto.NotVerified()
	}

	intact := seal.VerifyCreditNote(cn)
	if !intact {
		logger.Warn("Credit note failed integrity recheck", slog.String("credit_note_id", cn.CreditNoteID))
	}
	issuedAt := cn.IssuedAt
	return dto.VerifyResponse{
		Verified: intact,
		Summary: &dto.VerificationSummary{
			DocumentType:   "credit_note",
			Number:         cn.DisplayNumber,
			IssuerName:     issuerName(cn.IssuerSnapshot),
			TotalAmount:    cn.Amount,
			CurrencyCode:   cn.CurrencyCode,
			Status:         "ISSUED",
			IssuedAt:       &issuedAt,
			IntegrityValid: intact,
		},
	}
}

func issuerName(s *domain.PartySnapshot) string {
	if s == nil {
		return ""
	}
	return s.LegalName
}
