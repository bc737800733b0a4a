package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/invara/invoicing_backend/internal/apperrors"
	"github.com/invara/invoicing_backend/internal/core/domain"
	portsrepo "github.com/invara/invoicing_backend/internal/core/ports/repositories"
	portssvc "github.com/invara/invoicing_backend/internal/core/ports/services"
	"github.com/invara/invoicing_backend/internal/core/seal"
	"github.com/invara/invoicing_backend/internal/dto"
	"github.com/invara/invoicing_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// creditNotePrefix numbers credit notes independently of invoices.
const creditNotePrefix = "CN"

// Named failures of the reversal engine.
var (
	ErrNotPaid       = fmt.Errorf("%w: only a paid invoice can be reversed", apperrors.ErrPrecondition)
	ErrOverReversal  = fmt.Errorf("%w: reversal exceeds the paid amount", apperrors.ErrValidation)
	ErrReasonMissing = fmt.Errorf("%w: a reversal reason is required", apperrors.ErrValidation)
)

// CreditNoteService is the reversal engine. A reversal compensates a paid
// invoice with a new, independently sealed credit note and flips the
// original to CREDITED in the same transaction. The original's sealed
// content is never touched.
type CreditNoteService struct {
	creditNoteRepo portsrepo.CreditNoteRepositoryFacade
	invoiceRepo    portsrepo.InvoiceRepositoryWithTx
	sequenceRepo   portsrepo.SequenceRepository
	auditRepo      portsrepo.AuditRepository
	outboxRepo     portsrepo.OutboxRepository
	tenantSvc      portssvc.TenantSvcFacade
	identity       portssvc.IdentityVerifierSvc
	verification   portssvc.VerificationSvcFacade
}

// NewCreditNoteService creates a new CreditNoteService.
func NewCreditNoteService(
	repos *portsrepo.RepositoryProvider,
	tenantSvc portssvc.TenantSvcFacade,
	identity portssvc.IdentityVerifierSvc,
	verification portssvc.VerificationSvcFacade,
) portssvc.CreditNoteSvcFacade {
	return &CreditNoteService{
		creditNoteRepo: repos.CreditNoteRepo,
		invoiceRepo:    repos.InvoiceRepo,
		sequenceRepo:   repos.SequenceRepo,
		auditRepo:      repos.AuditRepo,
		outboxRepo:     repos.OutboxRepo,
		tenantSvc:      tenantSvc,
		identity:       identity,
		verification:   verification,
	}
}

// Ensure CreditNoteService implements the portssvc.CreditNoteSvcFacade interface
var _ portssvc.CreditNoteSvcFacade = (*CreditNoteService)(nil)

// ReverseInvoice creates a credit note against a paid invoice. The note gets
// its own sequence number, seal and verification token; the snapshots are
// copied verbatim from the original, not re-captured.
func (s *CreditNoteService) ReverseInvoice(ctx context.Context, tenantID string, invoiceID string, req dto.ReverseInvoiceRequest, actorUserID string) (*domain.CreditNote, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.tenantSvc.AuthorizeUserAction(ctx, actorUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}
	verified, err := s.identity.IsEmailVerified(ctx, actorUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check actor identity: %w", err)
	}
	if !verified {
		return nil, ErrEmailUnverified
	}
	if req.Reason == "" {
		return nil, ErrReasonMissing
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: reversal amount must be positive", apperrors.ErrValidation)
	}

	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.TenantID != tenantID {
		return nil, apperrors.ErrNotFound
	}
	if inv.Status != domain.StatusPaid {
		return nil, ErrNotPaid
	}
	if req.Amount.GreaterThan(inv.AmountPaid) {
		return nil, ErrOverReversal
	}

	if err := s.tenantSvc.CheckIssuanceAllowance(ctx, tenantID); err != nil {
		return nil, err
	}

	token, err := s.verification.MintToken()
	if err != nil {
		return nil, err
	}

	// Microsecond precision, same as invoice issuance: the sealed timestamp
	// must match what the database returns.
	now := time.Now().UTC().Truncate(time.Microsecond)
	tx, err := s.invoiceRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.invoiceRepo.Rollback(ctx, tx) }()

	sequence, err := s.sequenceRepo.NextSequenceInTx(ctx, tx, inv.Owner.SequenceScope(tenantID), portsrepo.SequenceKindCreditNote)
	if err != nil {
		return nil, err
	}

	cn := domain.CreditNote{
		CreditNoteID:      uuid.NewString(),
		TenantID:          tenantID,
		OriginalInvoiceID: inv.InvoiceID,
		SequenceNumber:    sequence,
		DisplayNumber:     domain.FormatDisplayNumber(creditNotePrefix, sequence),
		CurrencyCode:      inv.CurrencyCode,
		Amount:            req.Amount,
		Reason:            req.Reason,
		IssuedAt:          now,
		IssuerSnapshot:    inv.IssuerSnapshot.Clone(),
		RecipientSnapshot: inv.RecipientSnapshot.Clone(),
		VerificationID:    token,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}
	cn.CreditNoteHash = seal.SealCreditNote(&cn)

	if err := s.creditNoteRepo.SaveCreditNoteInTx(ctx, tx, cn); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.MarkCreditedInTx(ctx, tx, inv.InvoiceID, actorUserID, now); err != nil {
		return nil, err
	}

	reason := req.Reason
	entry := domain.AuditEntry{
		EntryID:    uuid.NewString(),
		ActorID:    actorUserID,
		Action:     domain.ActionInvoiceCredited,
		EntityID:   inv.InvoiceID,
		Reason:     &reason,
		OccurredAt: now,
	}
	if err := s.auditRepo.SaveEntryInTx(ctx, tx, entry); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(map[string]string{
		"creditNoteID":      cn.CreditNoteID,
		"originalInvoiceID": inv.InvoiceID,
		"displayNumber":     cn.DisplayNumber,
		"amount":            cn.Amount.StringFixed(2),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode outbox payload: %w", err)
	}
	event := domain.OutboxEvent{
		EventID:   uuid.NewString(),
		EventType: domain.EventCreditNoteIssued,
		EntityID:  cn.CreditNoteID,
		Payload:   payload,
		CreatedAt: now,
	}
	if err := s.outboxRepo.SaveEventInTx(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Invoice reversed",
		slog.String("credit_note_id", cn.CreditNoteID),
		slog.String("invoice_id", inv.InvoiceID),
		slog.String("display_number", cn.DisplayNumber),
	)
	return &cn, nil
}

// GetCreditNoteByID retrieves a credit note within the tenant.
func (s *CreditNoteService) GetCreditNoteByID(ctx context.Context, tenantID string, creditNoteID string, requestingUserID string) (*domain.CreditNote, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	cn, err := s.creditNoteRepo.FindCreditNoteByID(ctx, creditNoteID)
	if err != nil {
		return nil, err
	}
	if cn.TenantID != tenantID {
		return nil, apperrors.ErrNotFound
	}
	return cn, nil
}

// ListCreditNotesByInvoice lists credit notes referencing an invoice.
func (s *CreditNoteService) ListCreditNotesByInvoice(ctx context.Context, tenantID string, invoiceID string, requestingUserID string) ([]domain.CreditNote, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.TenantID != tenantID {
		return nil, apperrors.ErrNotFound
	}

	return s.creditNoteRepo.FindCreditNotesByInvoiceID(ctx, invoiceID)
}
