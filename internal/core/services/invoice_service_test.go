package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/invara/invoicing_backend/internal/apperrors"
	"github.com/invara/invoicing_backend/internal/core/domain"
	"github.com/invara/invoicing_backend/internal/core/seal"
	"github.com/invara/invoicing_backend/internal/core/services"
	"github.com/invara/invoicing_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	portssvc "github.com/invara/invoicing_backend/internal/core/ports/services"
)

type InvoiceServiceTestSuite struct {
	suite.Suite
	repos        *mockRepos
	tenantSvc    *MockTenantService
	identity     *MockIdentityVerifier
	verification *MockVerificationService
	service      portssvc.InvoiceSvcFacade

	tenantID string
	userID   string
	clientID string
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.repos = newMockRepos()
	suite.tenantSvc = new(MockTenantService)
	suite.identity = new(MockIdentityVerifier)
	suite.verification = new(MockVerificationService)
	suite.service = services.NewInvoiceService(suite.repos.provider(), suite.tenantSvc, suite.identity, suite.verification)

	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.clientID = uuid.NewString()
}

func (suite *InvoiceServiceTestSuite) activeClient() *domain.Client {
	return &domain.Client{
		ClientID:  suite.clientID,
		TenantID:  suite.tenantID,
		LegalName: "Client Ltd",
		IsActive:  true,
	}
}

func (suite *InvoiceServiceTestSuite) draftInvoice() *domain.Invoice {
	owner, err := domain.NewPersonalOwner(suite.userID)
	suite.Require().NoError(err)
	return &domain.Invoice{
		InvoiceID:    uuid.NewString(),
		TenantID:     suite.tenantID,
		Owner:        owner,
		ClientID:     suite.clientID,
		Status:       domain.StatusDraft,
		CurrencyCode: "EUR",
		AmountPaid:   decimal.Zero,
	}
}

func (suite *InvoiceServiceTestSuite) draftItems(invoiceID string) []domain.LineItem {
	items := []domain.LineItem{
		{
			LineItemID:  uuid.NewString(),
			InvoiceID:   invoiceID,
			Position:    0,
			Description: "Consulting",
			Quantity:    decimal.NewFromInt(2),
			UnitPrice:   decimal.RequireFromString("50.00"),
			TaxRate:     decimal.NewFromInt(10),
		},
		{
			LineItemID:  uuid.NewString(),
			InvoiceID:   invoiceID,
			Position:    1,
			Description: "Support",
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   decimal.RequireFromString("30.00"),
			TaxRate:     decimal.NewFromInt(10),
		},
	}
	for i := range items {
		items[i].Amount = items[i].ComputeAmount()
	}
	return items
}

func (suite *InvoiceServiceTestSuite) TestCreateDraft_Success() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		ClientID:     suite.clientID,
		CurrencyCode: "EUR",
		LineItems: []dto.LineItemRequest{
			{Description: "Consulting", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.RequireFromString("50.00"), TaxRate: decimal.NewFromInt(10)},
			{Description: "Support", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("30.00"), TaxRate: decimal.NewFromInt(10)},
		},
	}

	suite.tenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.repos.client.On("FindClientByID", ctx, suite.clientID).Return(suite.activeClient(), nil).Once()
	suite.repos.invoice.On("SaveDraftInvoice", ctx, mock.AnythingOfType("domain.Invoice"), mock.AnythingOfType("[]domain.LineItem")).Return(nil).Once()

	inv, err := suite.service.CreateDraft(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(inv)
	suite.Equal(domain.StatusDraft, inv.Status)
	suite.Equal(domain.OwnerPersonal, inv.Owner.Kind())
	suite.Empty(inv.DisplayNumber)
	suite.Empty(inv.InvoiceHash)
	suite.Empty(inv.VerificationID)
	suite.True(inv.Subtotal.Equal(decimal.RequireFromString("130.00")), "subtotal was %s", inv.Subtotal)
	suite.True(inv.TaxAmount.Equal(decimal.RequireFromString("13.00")), "tax was %s", inv.TaxAmount)
	suite.True(inv.TotalAmount.Equal(decimal.RequireFromString("143.00")), "total was %s", inv.TotalAmount)
	suite.Len(inv.LineItems, 2)

	suite.repos.invoice.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateDraft_Forbidden() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		ClientID:     suite.clientID,
		CurrencyCode: "EUR",
		LineItems:    []dto.LineItemRequest{{Description: "x", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)}},
	}

	suite.tenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.CreateDraft(ctx, suite.tenantID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.repos.invoice.AssertNotCalled(suite.T(), "SaveDraftInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateDraft_InactiveClient() {
	ctx := context.Background()
	client := suite.activeClient()
	client.IsActive = false
	req := dto.CreateInvoiceRequest{
		ClientID:     suite.clientID,
		CurrencyCode: "EUR",
		LineItems:    []dto.LineItemRequest{{Description: "x", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)}},
	}

	suite.tenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.repos.client.On("FindClientByID", ctx, suite.clientID).Return(client, nil).Once()

	_, err := suite.service.CreateDraft(ctx, suite.tenantID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *InvoiceServiceTestSuite) TestIssueInvoice_Success() {
	ctx := context.Background()
	draft := suite.draftInvoice()
	items := suite.draftItems(draft.InvoiceID)
	tenant := &domain.Tenant{
		TenantID:     suite.tenantID,
		Name:         "Acme",
		Profile:      domain.IssuerProfile{LegalName: "Acme GmbH"},
		NumberPrefix: "INV",
		IsActive:     true,
	}
	token := "opaque-verification-token"

	suite.tenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.identity.On("IsEmailVerified", ctx, suite.userID).Return(true, nil).Once()
	suite.repos.invoice.On("FindInvoiceByID", ctx, draft.InvoiceID).Return(draft, nil).Once()
	suite.repos.invoice.On("FindLineItemsByInvoiceID", ctx, draft.InvoiceID).Return(items, nil).Once()
	suite.tenantSvc.On("CheckIssuanceAllowance", ctx, suite.tenantID).Return(nil).Once()
	suite.repos.tenant.On("FindTenantByID", ctx, suite.tenantID).Return(tenant, nil).Once()
	suite.repos.client.On("FindClientByID", ctx, suite.clientID).Return(suite.activeClient(), nil).Once()
	suite.verification.On("MintToken").Return(token, nil).Once()

	suite.repos.invoice.On("Begin", ctx).Return(nil, nil).Once()
	suite.repos.invoice.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()
	suite.repos.sequence.On("NextSequenceInTx", ctx, mock.Anything, "tenant:"+suite.tenantID, "INV").Return(int64(5), nil).Once()
	suite.repos.currencyLock.On("AcquireInTx", ctx, mock.Anything, suite.tenantID, "EUR", mock.AnythingOfType("time.Time")).Return(nil).Once()

	var sealed domain.Invoice
	suite.repos.invoice.On("MarkIssuedInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Invoice")).
		Run(func(args mock.Arguments) { sealed = args.Get(2).(domain.Invoice) }).
		Return(nil).Once()
	suite.repos.audit.On("SaveEntryInTx", ctx, mock.Anything, mock.AnythingOfType("domain.AuditEntry")).Return(nil).Once()
	suite.repos.outbox.On("SaveEventInTx", ctx, mock.Anything, mock.AnythingOfType("domain.OutboxEvent")).Return(nil).Once()
	suite.repos.invoice.On("Commit", ctx, mock.Anything).Return(nil).Once()

	resp, err := suite.service.IssueInvoice(ctx, suite.tenantID, draft.InvoiceID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Equal("INV-0005", resp.Invoice.DisplayNumber)
	suite.Equal(string(domain.StatusIssued), resp.Invoice.Status)
	suite.Len(resp.InvoiceHash, 64)
	suite.Equal(token, resp.VerificationID)
	suite.True(resp.Invoice.TotalAmount.Equal(decimal.RequireFromString("143.00")))

	// The persisted row carries the frozen snapshots and a reproducible seal.
	suite.Require().NotNil(sealed.IssuerSnapshot)
	suite.Equal("Acme GmbH", sealed.IssuerSnapshot.LegalName)
	suite.Require().NotNil(sealed.RecipientSnapshot)
	suite.Equal("Client Ltd", sealed.RecipientSnapshot.LegalName)
	suite.Equal(int64(5), sealed.SequenceNumber)
	suite.Equal(sealed.InvoiceHash, seal.SealInvoice(&sealed))

	// The issuance timestamp carries nothing finer than a microsecond, so
	// the seal still matches after the row comes back from timestamptz.
	roundTripped := sealed.IssuedAt.Truncate(time.Microsecond)
	suite.True(sealed.IssuedAt.Equal(roundTripped))
	restored := sealed
	restored.IssuedAt = &roundTripped
	suite.Equal(sealed.InvoiceHash, seal.SealInvoice(&restored))

	suite.repos.invoice.AssertExpectations(suite.T())
	suite.repos.sequence.AssertExpectations(suite.T())
	suite.repos.audit.AssertExpectations(suite.T())
	suite.repos.outbox.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestIssueInvoice_CurrencyMismatch() {
	ctx := context.Background()
	draft := suite.draftInvoice()
	draft.CurrencyCode = "USD"
	items := suite.draftItems(draft.InvoiceID)
	tenant := &domain.Tenant{TenantID: suite.tenantID, NumberPrefix: "INV", IsActive: true}

	suite.tenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.identity.On("IsEmailVerified", ctx, suite.userID).Return(true, nil).Once()
	suite.repos.invoice.On("FindInvoiceByID", ctx, draft.InvoiceID).Return(draft, nil).Once()
	suite.repos.invoice.On("FindLineItemsByInvoiceID", ctx, draft.InvoiceID).Return(items, nil).Once()
	suite.tenantSvc.On("CheckIssuanceAllowance", ctx, suite.tenantID).Return(nil).Once()
	suite.repos.tenant.On("FindTenantByID", ctx, suite.tenantID).Return(tenant, nil).Once()
	suite.repos.client.On("FindClientByID", ctx, suite.clientID).Return(suite.activeClient(), nil).Once()
	suite.verification.On("MintToken").Return("tok", nil).Once()

	suite.repos.invoice.On("Begin", ctx).Return(nil, nil).Once()
	suite.repos.invoice.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.repos.sequence.On("NextSequenceInTx", ctx, mock.Anything, "tenant:"+suite.tenantID, "INV").Return(int64(1), nil).Once()
	suite.repos.currencyLock.On("AcquireInTx", ctx, mock.Anything, suite.tenantID, "USD", mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrPrecondition).Once()

	_, err := suite.service.IssueInvoice(ctx, suite.tenantID, draft.InvoiceID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrPrecondition)
	suite.repos.invoice.AssertNotCalled(suite.T(), "MarkIssuedInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.repos.invoice.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.repos.invoice.AssertCalled(suite.T(), "Rollback", ctx, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestIssueInvoice_NotDraft() {
	ctx := context.Background()
	inv := suite.draftInvoice()
	inv.Status = domain.StatusIssued

	suite.tenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.identity.On("IsEmailVerified", ctx, suite.userID).Return(true, nil).Once()
	suite.repos.invoice.On("FindInvoiceByID", ctx, inv.InvoiceID).Return(inv, nil).Once()

	_, err := suite.service.IssueInvoice(ctx, suite.tenantID, inv.InvoiceID, suite.userID)

	suite.ErrorIs(err, services.ErrNotDraft)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.repos.invoice.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestIssueInvoice_UnverifiedEmail() {
	ctx := context.Background()
	draft := suite.draftInvoice()

	suite.tenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.identity.On("IsEmailVerified", ctx, suite.userID).Return(false, nil).Once()

	_, err := suite.service.IssueInvoice(ctx, suite.tenantID, draft.InvoiceID, suite.userID)

	suite.ErrorIs(err, services.ErrEmailUnverified)
	suite.ErrorIs(err, apperrors.ErrPrecondition)
	suite.repos.invoice.AssertNotCalled(suite.T(), "FindInvoiceByID", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestIssueInvoice_QuotaExhausted() {
	ctx := context.Background()
	draft := suite.draftInvoice()
	items := suite.draftItems(draft.InvoiceID)

	suite.tenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.identity.On("IsEmailVerified", ctx, suite.userID).Return(true, nil).Once()
	suite.repos.invoice.On("FindInvoiceByID", ctx, draft.InvoiceID).Return(draft, nil).Once()
	suite.repos.invoice.On("FindLineItemsByInvoiceID", ctx, draft.InvoiceID).Return(items, nil).Once()
	suite.tenantSvc.On("CheckIssuanceAllowance", ctx, suite.tenantID).Return(apperrors.ErrPrecondition).Once()

	_, err := suite.service.IssueInvoice(ctx, suite.tenantID, draft.InvoiceID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrPrecondition)
	suite.repos.invoice.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestRecordPayment_PartialKeepsStatus() {
	ctx := context.Background()
	inv := suite.draftInvoice()
	inv.Status = domain.StatusIssued
	inv.TotalAmount = decimal.RequireFromString("143.00")

	suite.tenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.repos.invoice.On("FindInvoiceByID", ctx, inv.InvoiceID).Return(inv, nil).Once()
	suite.repos.invoice.On("RecordPayment", ctx, inv.InvoiceID, domain.StatusIssued, domain.StatusIssued,
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.RequireFromString("43.00")) }),
		suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.RecordPayment(ctx, suite.tenantID, inv.InvoiceID, dto.RecordPaymentRequest{Amount: decimal.RequireFromString("43.00")}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusIssued, updated.Status)
	suite.True(updated.AmountPaid.Equal(decimal.RequireFromString("43.00")))
	suite.repos.invoice.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestRecordPayment_FullFlipsToPaid() {
	ctx := context.Background()
	inv := suite.draftInvoice()
	inv.Status = domain.StatusViewed
	inv.TotalAmount = decimal.RequireFromString("143.00")
	inv.AmountPaid = decimal.RequireFromString("43.00")

	suite.tenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.repos.invoice.On("FindInvoiceByID", ctx, inv.InvoiceID).Return(inv, nil).Once()
	suite.repos.invoice.On("RecordPayment", ctx, inv.InvoiceID, domain.StatusViewed, domain.StatusPaid,
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.RequireFromString("143.00")) }),
		suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.RecordPayment(ctx, suite.tenantID, inv.InvoiceID, dto.RecordPaymentRequest{Amount: decimal.RequireFromString("100.00")}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPaid, updated.Status)
	suite.repos.invoice.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestRecordPayment_OverpaymentRejected() {
	ctx := context.Background()
	inv := suite.draftInvoice()
	inv.Status = domain.StatusIssued
	inv.TotalAmount = decimal.RequireFromString("100.00")
	inv.AmountPaid = decimal.RequireFromString("90.00")

	suite.tenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.repos.invoice.On("FindInvoiceByID", ctx, inv.InvoiceID).Return(inv, nil).Once()

	_, err := suite.service.RecordPayment(ctx, suite.tenantID, inv.InvoiceID, dto.RecordPaymentRequest{Amount: decimal.RequireFromString("10.01")}, suite.userID)

	suite.ErrorIs(err, services.ErrOverpayment)
	suite.repos.invoice.AssertNotCalled(suite.T(), "RecordPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestRecordPayment_OnDraftRejected() {
	ctx := context.Background()
	inv := suite.draftInvoice()

	suite.tenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.repos.invoice.On("FindInvoiceByID", ctx, inv.InvoiceID).Return(inv, nil).Once()

	_, err := suite.service.RecordPayment(ctx, suite.tenantID, inv.InvoiceID, dto.RecordPaymentRequest{Amount: decimal.NewFromInt(10)}, suite.userID)

	suite.ErrorIs(err, services.ErrInvalidTransition)
}

func (suite *InvoiceServiceTestSuite) TestVoidInvoice_Success() {
	ctx := context.Background()
	inv := suite.draftInvoice()
	inv.Status = domain.StatusSent

	suite.tenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.repos.invoice.On("FindInvoiceByID", ctx, inv.InvoiceID).Return(inv, nil).Once()
	suite.repos.invoice.On("Begin", ctx).Return(nil, nil).Once()
	suite.repos.invoice.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()
	suite.repos.invoice.On("VoidInvoiceInTx", ctx, mock.Anything, inv.InvoiceID, domain.StatusSent, "duplicate billing", suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	var entry domain.AuditEntry
	suite.repos.audit.On("SaveEntryInTx", ctx, mock.Anything, mock.AnythingOfType("domain.AuditEntry")).
		Run(func(args mock.Arguments) { entry = args.Get(2).(domain.AuditEntry) }).
		Return(nil).Once()
	suite.repos.outbox.On("SaveEventInTx", ctx, mock.Anything, mock.AnythingOfType("domain.OutboxEvent")).Return(nil).Once()
	suite.repos.invoice.On("Commit", ctx, mock.Anything).Return(nil).Once()

	err := suite.service.VoidInvoice(ctx, suite.tenantID, inv.InvoiceID, dto.VoidInvoiceRequest{Reason: "duplicate billing"}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.ActionInvoiceVoided, entry.Action)
	suite.Require().NotNil(entry.Reason)
	suite.Equal("duplicate billing", *entry.Reason)
	suite.repos.invoice.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestVoidInvoice_PaidRejected() {
	ctx := context.Background()
	inv := suite.draftInvoice()
	inv.Status = domain.StatusPaid

	suite.tenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.repos.invoice.On("FindInvoiceByID", ctx, inv.InvoiceID).Return(inv, nil).Once()

	err := suite.service.VoidInvoice(ctx, suite.tenantID, inv.InvoiceID, dto.VoidInvoiceRequest{Reason: "r"}, suite.userID)

	suite.ErrorIs(err, services.ErrInvalidTransition)
	suite.repos.invoice.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestVoidInvoice_MissingReason() {
	ctx := context.Background()

	suite.tenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()

	err := suite.service.VoidInvoice(ctx, suite.tenantID, uuid.NewString(), dto.VoidInvoiceRequest{}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *InvoiceServiceTestSuite) TestMarkSent_Success() {
	ctx := context.Background()
	inv := suite.draftInvoice()
	inv.Status = domain.StatusIssued

	suite.tenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.repos.invoice.On("FindInvoiceByID", ctx, inv.InvoiceID).Return(inv, nil).Once()
	suite.repos.invoice.On("UpdateInvoiceStatus", ctx, inv.InvoiceID, domain.StatusIssued, domain.StatusSent, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.MarkSent(ctx, suite.tenantID, inv.InvoiceID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusSent, updated.Status)
}

func (suite *InvoiceServiceTestSuite) TestMarkSent_FromVoidedRejected() {
	ctx := context.Background()
	inv := suite.draftInvoice()
	inv.Status = domain.StatusVoided

	suite.tenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.repos.invoice.On("FindInvoiceByID", ctx, inv.InvoiceID).Return(inv, nil).Once()

	_, err := suite.service.MarkSent(ctx, suite.tenantID, inv.InvoiceID, suite.userID)

	suite.ErrorIs(err, services.ErrInvalidTransition)
}

func (suite *InvoiceServiceTestSuite) TestGetInvoice_CrossTenantHidden() {
	ctx := context.Background()
	inv := suite.draftInvoice()
	inv.TenantID = uuid.NewString() // some other tenant

	suite.tenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleReadOnly).Return(nil).Once()
	suite.repos.invoice.On("FindInvoiceByID", ctx, inv.InvoiceID).Return(inv, nil).Once()

	_, err := suite.service.GetInvoiceByID(ctx, suite.tenantID, inv.InvoiceID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *InvoiceServiceTestSuite) TestDeleteDraft_IssuedRejected() {
	ctx := context.Background()
	inv := suite.draftInvoice()
	inv.Status = domain.StatusIssued

	suite.tenantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.tenantID, domain.RoleMember).Return(nil).Once()
	suite.repos.invoice.On("FindInvoiceByID", ctx, inv.InvoiceID).Return(inv, nil).Once()

	err := suite.service.DeleteDraft(ctx, suite.tenantID, inv.InvoiceID, suite.userID)

	suite.ErrorIs(err, services.ErrNotDraft)
	suite.repos.invoice.AssertNotCalled(suite.T(), "DeleteDraftInvoice", mock.Anything, mock.Anything)
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
