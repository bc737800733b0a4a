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

// Named failures of the invoice lifecycle. Each wraps a sentinel so handlers
// can map it without string matching.
var (
	ErrEmailUnverified   = fmt.Errorf("%w: actor's email address is not verified", apperrors.ErrPrecondition)
	ErrNotDraft          = fmt.Errorf("%w: invoice is no longer a draft", apperrors.ErrConflict)
	ErrInvalidTransition = fmt.Errorf("%w: illegal status transition", apperrors.ErrConflict)
	ErrOverpayment       = fmt.Errorf("%w: payment exceeds the invoice total", apperrors.ErrValidation)
	ErrNoLineItems       = fmt.Errorf("%w: an invoice needs at least one line item", apperrors.ErrValidation)
)

// InvoiceService is the lifecycle controller. Every status change flows
// through here; issuance, payment and voiding are each one method, and the
// issuance unit commits all of its effects in a single transaction.
type InvoiceService struct {
	invoiceRepo      portsrepo.InvoiceRepositoryWithTx
	sequenceRepo     portsrepo.SequenceRepository
	currencyLockRepo portsrepo.CurrencyLockRepository
	clientRepo       portsrepo.ClientRepositoryFacade
	tenantRepo       portsrepo.TenantRepositoryFacade
	auditRepo        portsrepo.AuditRepository
	outboxRepo       portsrepo.OutboxRepository
	tenantSvc        portssvc.TenantSvcFacade
	identity         portssvc.IdentityVerifierSvc
	verification     portssvc.VerificationSvcFacade
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(
	repos *portsrepo.RepositoryProvider,
	tenantSvc portssvc.TenantSvcFacade,
	identity portssvc.IdentityVerifierSvc,
	verification portssvc.VerificationSvcFacade,
) portssvc.InvoiceSvcFacade {
	return &InvoiceService{
		invoiceRepo:      repos.InvoiceRepo,
		sequenceRepo:     repos.SequenceRepo,
		currencyLockRepo: repos.CurrencyLockRepo,
		clientRepo:       repos.ClientRepo,
		tenantRepo:       repos.TenantRepo,
		auditRepo:        repos.AuditRepo,
		outboxRepo:       repos.OutboxRepo,
		tenantSvc:        tenantSvc,
		identity:         identity,
		verification:     verification,
	}
}

// Ensure InvoiceService implements the portssvc.InvoiceSvcFacade interface
var _ portssvc.InvoiceSvcFacade = (*InvoiceService)(nil)

// buildLineItems converts line item requests into domain line items with
// computed amounts and stored positions.
func buildLineItems(invoiceID string, reqs []dto.LineItemRequest, actorID string, now time.Time) ([]domain.LineItem, error) {
	items := make([]domain.LineItem, len(reqs))
	for i, req := range reqs {
		if req.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: line %d quantity must be positive", apperrors.ErrValidation, i+1)
		}
		if req.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: line %d unit price must not be negative", apperrors.ErrValidation, i+1)
		}
		if req.TaxRate.IsNegative() || req.DiscountPercent.IsNegative() || req.DiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
			return nil, fmt.Errorf("%w: line %d has an invalid rate", apperrors.ErrValidation, i+1)
		}
		li := domain.LineItem{
			LineItemID:      uuid.NewString(),
			InvoiceID:       invoiceID,
			Position:        i,
			Description:     req.Description,
			Quantity:        req.Quantity,
			UnitPrice:       req.UnitPrice,
			TaxRate:         req.TaxRate,
			DiscountPercent: req.DiscountPercent,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		}
		li.Amount = li.ComputeAmount()
		items[i] = li
	}
	return items, nil
}

// applyTotals recomputes the invoice's money fields from its line items.
func applyTotals(inv *domain.Invoice, items []domain.LineItem) {
	subtotal := decimal.Zero
	tax := decimal.Zero
	discount := decimal.Zero
	total := decimal.Zero
	for i := range items {
		li := &items[i]
		gross := li.Quantity.Mul(li.UnitPrice).Round(2)
		subtotal = subtotal.Add(gross)
		discount = discount.Add(gross.Sub(li.NetAmount()))
		tax = tax.Add(li.TaxPortion())
		total = total.Add(li.Amount)
	}
	inv.Subtotal = subtotal
	inv.TaxAmount = tax
	inv.DiscountAmount = discount
	inv.TotalAmount = total
}

// resolveOwner builds the invoice owner from the request: an organization
// when one is named, the acting user otherwise.
func (s *InvoiceService) resolveOwner(ctx context.Context, tenantID string, ownerOrgID string, actorUserID string) (domain.Owner, error) {
	if ownerOrgID == "" {
		return domain.NewPersonalOwner(actorUserID)
	}
	org, err := s.tenantRepo.FindOrganizationByID(ctx, ownerOrgID)
	if err != nil {
		return domain.Owner{}, err
	}
	if org.TenantID != tenantID {
		return domain.Owner{}, apperrors.ErrNotFound
	}
	if !org.IsActive {
		return domain.Owner{}, fmt.Errorf("%w: organization %s is inactive", apperrors.ErrValidation, ownerOrgID)
	}
	return domain.NewOrganizationOwner(ownerOrgID)
}

// resolveRecipient validates the client belongs to the tenant and is active.
func (s *InvoiceService) resolveRecipient(ctx context.Context, tenantID string, clientID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client.TenantID != tenantID {
		return nil, apperrors.ErrNotFound
	}
	if !client.IsActive {
		return nil, fmt.Errorf("%w: client %s is inactive", apperrors.ErrValidation, clientID)
	}
	return client, nil
}

// getTenantInvoice loads an invoice and hides cross-tenant records behind
// ErrNotFound.
func (s *InvoiceService) getTenantInvoice(ctx context.Context, tenantID string, invoiceID string) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.TenantID != tenantID {
		return nil, apperrors.ErrNotFound
	}
	return inv, nil
}

// CreateDraft creates a freely editable draft invoice.
func (s *InvoiceService) CreateDraft(ctx context.Context, tenantID string, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.tenantSvc.AuthorizeUserAction(ctx, creatorUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}
	if len(req.LineItems) == 0 {
		return nil, ErrNoLineItems
	}
	if _, err := s.resolveRecipient(ctx, tenantID, req.ClientID); err != nil {
		return nil, err
	}
	owner, err := s.resolveOwner(ctx, tenantID, req.OwnerOrgID, creatorUserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	invoiceID := uuid.NewString()
	items, err := buildLineItems(invoiceID, req.LineItems, creatorUserID, now)
	if err != nil {
		return nil, err
	}

	inv := domain.Invoice{
		InvoiceID:    invoiceID,
		TenantID:     tenantID,
		Owner:        owner,
		ClientID:     req.ClientID,
		Status:       domain.StatusDraft,
		CurrencyCode: req.CurrencyCode,
		AmountPaid:   decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	applyTotals(&inv, items)

	if err := s.invoiceRepo.SaveDraftInvoice(ctx, inv, items); err != nil {
		logger.Error("Failed to save draft invoice", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}

	inv.LineItems = items
	logger.Info("Draft invoice created", slog.String("invoice_id", inv.InvoiceID), slog.String("tenant_id", tenantID))
	return &inv, nil
}

// GetInvoiceByID retrieves an invoice with its line items.
func (s *InvoiceService) GetInvoiceByID(ctx context.Context, tenantID string, invoiceID string, requestingUserID string) (*domain.Invoice, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	inv, err := s.getTenantInvoice(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	items, err := s.invoiceRepo.FindLineItemsByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	inv.LineItems = items
	return inv, nil
}

// ListInvoices retrieves a paginated invoice listing for a tenant.
func (s *InvoiceService) ListInvoices(ctx context.Context, tenantID string, requestingUserID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	invoices, nextToken, err := s.invoiceRepo.ListInvoicesByTenant(ctx, tenantID, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListInvoicesResponse{
		Invoices:  make([]dto.InvoiceResponse, len(invoices)),
		NextToken: nextToken,
	}
	for i := range invoices {
		resp.Invoices[i] = dto.ToInvoiceResponse(&invoices[i])
	}
	return resp, nil
}

// UpdateDraft replaces a draft's editable content and recomputes totals.
func (s *InvoiceService) UpdateDraft(ctx context.Context, tenantID string, invoiceID string, req dto.UpdateInvoiceRequest, requestingUserID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}
	inv, err := s.getTenantInvoice(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	if !inv.IsDraft() {
		return nil, ErrNotDraft
	}

	now := time.Now()
	if req.ClientID != nil {
		if _, err := s.resolveRecipient(ctx, tenantID, *req.ClientID); err != nil {
			return nil, err
		}
		inv.ClientID = *req.ClientID
	}
	if req.CurrencyCode != nil {
		inv.CurrencyCode = *req.CurrencyCode
	}

	var items []domain.LineItem
	if len(req.LineItems) > 0 {
		items, err = buildLineItems(invoiceID, req.LineItems, requestingUserID, now)
		if err != nil {
			return nil, err
		}
	} else {
		items, err = s.invoiceRepo.FindLineItemsByInvoiceID(ctx, invoiceID)
		if err != nil {
			return nil, err
		}
	}
	applyTotals(inv, items)
	inv.LastUpdatedAt = now
	inv.LastUpdatedBy = requestingUserID

	if err := s.invoiceRepo.UpdateDraftInvoice(ctx, *inv, items); err != nil {
		logger.Error("Failed to update draft invoice", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, err
	}

	inv.LineItems = items
	return inv, nil
}

// DeleteDraft deletes a draft invoice. Issued invoices are never deletable.
func (s *InvoiceService) DeleteDraft(ctx context.Context, tenantID string, invoiceID string, requestingUserID string) error {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return err
	}
	inv, err := s.getTenantInvoice(ctx, tenantID, invoiceID)
	if err != nil {
		return err
	}
	if !inv.IsDraft() {
		return ErrNotDraft
	}
	return s.invoiceRepo.DeleteDraftInvoice(ctx, invoiceID)
}

// IssueInvoice runs the atomic issuance unit. Sequence allocation, the
// currency lock, snapshot capture, sealing, token minting, the sealed write,
// the audit entry and the outbox row all commit together or not at all.
func (s *InvoiceService) IssueInvoice(ctx context.Context, tenantID string, invoiceID string, actorUserID string) (*dto.IssueInvoiceResponse, error) {
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

	inv, err := s.getTenantInvoice(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	if !inv.IsDraft() {
		return nil, ErrNotDraft
	}
	items, err := s.invoiceRepo.FindLineItemsByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoLineItems
	}

	if err := s.tenantSvc.CheckIssuanceAllowance(ctx, tenantID); err != nil {
		return nil, err
	}

	tenant, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	issuerProfile := tenant.Profile
	if orgID, ok := inv.Owner.OrganizationID(); ok {
		org, err := s.tenantRepo.FindOrganizationByID(ctx, orgID)
		if err != nil {
			return nil, fmt.Errorf("failed to load owning organization: %w", err)
		}
		issuerProfile = org.Profile
	}
	client, err := s.resolveRecipient(ctx, tenantID, inv.ClientID)
	if err != nil {
		return nil, err
	}

	token, err := s.verification.MintToken()
	if err != nil {
		return nil, err
	}

	// timestamptz keeps microseconds; anything finer would not survive the
	// round-trip and the stored row could never re-seal to the same hash.
	now := time.Now().UTC().Truncate(time.Microsecond)
	tx, err := s.invoiceRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.invoiceRepo.Rollback(ctx, tx) }()

	sequence, err := s.sequenceRepo.NextSequenceInTx(ctx, tx, inv.Owner.SequenceScope(tenantID), portsrepo.SequenceKindInvoice)
	if err != nil {
		return nil, err
	}
	if err := s.currencyLockRepo.AcquireInTx(ctx, tx, tenantID, inv.CurrencyCode, now); err != nil {
		return nil, err
	}

	inv.SequenceNumber = sequence
	inv.DisplayNumber = domain.FormatDisplayNumber(tenant.NumberPrefix, sequence)
	inv.IssuedAt = &now
	inv.IssuerSnapshot = SnapshotFromProfile(issuerProfile)
	inv.RecipientSnapshot = SnapshotFromClient(client)
	inv.VerificationID = token
	inv.LineItems = items
	applyTotals(inv, items)
	inv.LastUpdatedAt = now
	inv.LastUpdatedBy = actorUserID
	inv.InvoiceHash = seal.SealInvoice(inv)

	if err := s.invoiceRepo.MarkIssuedInTx(ctx, tx, *inv); err != nil {
		return nil, err
	}

	entry := domain.AuditEntry{
		EntryID:    uuid.NewString(),
		ActorID:    actorUserID,
		Action:     domain.ActionInvoiceIssued,
		EntityID:   inv.InvoiceID,
		OccurredAt: now,
	}
	if err := s.auditRepo.SaveEntryInTx(ctx, tx, entry); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(map[string]string{
		"invoiceID":     inv.InvoiceID,
		"displayNumber": inv.DisplayNumber,
		"currencyCode":  inv.CurrencyCode,
		"totalAmount":   inv.TotalAmount.StringFixed(2),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode outbox payload: %w", err)
	}
	event := domain.OutboxEvent{
		EventID:   uuid.NewString(),
		EventType: domain.EventInvoiceIssued,
		EntityID:  inv.InvoiceID,
		Payload:   payload,
		CreatedAt: now,
	}
	if err := s.outboxRepo.SaveEventInTx(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	inv.Status = domain.StatusIssued
	logger.Info("Invoice issued",
		slog.String("invoice_id", inv.InvoiceID),
		slog.String("display_number", inv.DisplayNumber),
		slog.String("tenant_id", tenantID),
	)

	return &dto.IssueInvoiceResponse{
		Invoice:        dto.ToInvoiceResponse(inv),
		InvoiceHash:    inv.InvoiceHash,
		VerificationID: inv.VerificationID,
	}, nil
}

// transition applies a simple optimistic status-only change.
func (s *InvoiceService) transition(ctx context.Context, tenantID string, invoiceID string, to domain.InvoiceStatus, actorUserID string) (*domain.Invoice, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, actorUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}
	inv, err := s.getTenantInvoice(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(inv.Status, to) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, inv.Status, to)
	}

	now := time.Now()
	if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, invoiceID, inv.Status, to, actorUserID, now); err != nil {
		return nil, err
	}
	inv.Status = to
	inv.LastUpdatedAt = now
	inv.LastUpdatedBy = actorUserID
	return inv, nil
}

// MarkSent records delivery of an issued invoice.
func (s *InvoiceService) MarkSent(ctx context.Context, tenantID string, invoiceID string, actorUserID string) (*domain.Invoice, error) {
	return s.transition(ctx, tenantID, invoiceID, domain.StatusSent, actorUserID)
}

// MarkViewed records that the recipient opened the invoice.
func (s *InvoiceService) MarkViewed(ctx context.Context, tenantID string, invoiceID string, actorUserID string) (*domain.Invoice, error) {
	return s.transition(ctx, tenantID, invoiceID, domain.StatusViewed, actorUserID)
}

// RecordPayment applies a payment against an issued invoice. The invoice
// flips to PAID exactly when the running paid amount reaches the total.
func (s *InvoiceService) RecordPayment(ctx context.Context, tenantID string, invoiceID string, req dto.RecordPaymentRequest, actorUserID string) (*domain.Invoice, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, actorUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	inv, err := s.getTenantInvoice(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(inv.Status, domain.StatusPaid) {
		return nil, fmt.Errorf("%w: cannot record payment while %s", ErrInvalidTransition, inv.Status)
	}

	newPaid := inv.AmountPaid.Add(req.Amount)
	if newPaid.GreaterThan(inv.TotalAmount) {
		return nil, ErrOverpayment
	}

	to := inv.Status
	if newPaid.Equal(inv.TotalAmount) {
		to = domain.StatusPaid
	}

	now := time.Now()
	if err := s.invoiceRepo.RecordPayment(ctx, invoiceID, inv.Status, to, newPaid, actorUserID, now); err != nil {
		return nil, err
	}

	inv.AmountPaid = newPaid
	inv.Status = to
	inv.LastUpdatedAt = now
	inv.LastUpdatedBy = actorUserID
	return inv, nil
}

// VoidInvoice voids an unpaid issued invoice with a mandatory reason. The
// sealed content stays exactly as issued; only the status, reason and
// timestamp change, in one transaction with the audit entry.
func (s *InvoiceService) VoidInvoice(ctx context.Context, tenantID string, invoiceID string, req dto.VoidInvoiceRequest, actorUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.tenantSvc.AuthorizeUserAction(ctx, actorUserID, tenantID, domain.RoleMember); err != nil {
		return err
	}
	if req.Reason == "" {
		return fmt.Errorf("%w: a void reason is required", apperrors.ErrValidation)
	}

	inv, err := s.getTenantInvoice(ctx, tenantID, invoiceID)
	if err != nil {
		return err
	}
	if !domain.CanTransition(inv.Status, domain.StatusVoided) {
		return fmt.Errorf("%w: cannot void while %s", ErrInvalidTransition, inv.Status)
	}

	now := time.Now().UTC()
	tx, err := s.invoiceRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.invoiceRepo.Rollback(ctx, tx) }()

	if err := s.invoiceRepo.VoidInvoiceInTx(ctx, tx, invoiceID, inv.Status, req.Reason, actorUserID, now); err != nil {
		return err
	}

	reason := req.Reason
	entry := domain.AuditEntry{
		EntryID:    uuid.NewString(),
		ActorID:    actorUserID,
		Action:     domain.ActionInvoiceVoided,
		EntityID:   invoiceID,
		Reason:     &reason,
		OccurredAt: now,
	}
	if err := s.auditRepo.SaveEntryInTx(ctx, tx, entry); err != nil {
		return err
	}

	payload, err := json.Marshal(map[string]string{
		"invoiceID": invoiceID,
		"reason":    req.Reason,
	})
	if err != nil {
		return fmt.Errorf("failed to encode outbox payload: %w", err)
	}
	event := domain.OutboxEvent{
		EventID:   uuid.NewString(),
		EventType: domain.EventInvoiceVoided,
		EntityID:  invoiceID,
		Payload:   payload,
		CreatedAt: now,
	}
	if err := s.outboxRepo.SaveEventInTx(ctx, tx, event); err != nil {
		return err
	}

	if err := s.invoiceRepo.Commit(ctx, tx); err != nil {
		return err
	}

	logger.Info("Invoice voided", slog.String("invoice_id", invoiceID), slog.String("tenant_id", tenantID))
	return nil
}
