package services_test

import (
	"context"
	"time"

	"github.com/invara/invoicing_backend/internal/core/domain"
	"github.com/invara/invoicing_backend/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	portsrepo "github.com/invara/invoicing_backend/internal/core/ports/repositories"
)

// Shared mocks for the service test suites. Tx-taking methods receive a nil
// pgx.Tx from the mocked Begin; expectations match it with mock.Anything.

// MockInvoiceRepository is a mock type for the InvoiceRepositoryWithTx interface
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoiceByVerificationID(ctx context.Context, verificationID string) (*domain.Invoice, error) {
	args := m.Called(ctx, verificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindLineItemsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.LineItem, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LineItem), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoicesByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	args := m.Called(ctx, tenantID, limit, nextToken)
	var invoices []domain.Invoice
	if args.Get(0) != nil {
		invoices = args.Get(0).([]domain.Invoice)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return invoices, token, args.Error(2)
}

func (m *MockInvoiceRepository) CountIssuedByTenant(ctx context.Context, tenantID string) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) SaveDraftInvoice(ctx context.Context, invoice domain.Invoice, items []domain.LineItem) error {
	args := m.Called(ctx, invoice, items)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateDraftInvoice(ctx context.Context, invoice domain.Invoice, items []domain.LineItem) error {
	args := m.Called(ctx, invoice, items)
	return args.Error(0)
}

func (m *MockInvoiceRepository) DeleteDraftInvoice(ctx context.Context, invoiceID string) error {
	args := m.Called(ctx, invoiceID)
	return args.Error(0)
}

func (m *MockInvoiceRepository) MarkIssuedInTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error {
	args := m.Called(ctx, tx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoiceID string, from, to domain.InvoiceStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, invoiceID, from, to, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockInvoiceRepository) RecordPayment(ctx context.Context, invoiceID string, from, to domain.InvoiceStatus, newAmountPaid decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, invoiceID, from, to, newAmountPaid, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockInvoiceRepository) VoidInvoiceInTx(ctx context.Context, tx pgx.Tx, invoiceID string, from domain.InvoiceStatus, reason string, updatedBy string, voidedAt time.Time) error {
	args := m.Called(ctx, tx, invoiceID, from, reason, updatedBy, voidedAt)
	return args.Error(0)
}

func (m *MockInvoiceRepository) MarkCreditedInTx(ctx context.Context, tx pgx.Tx, invoiceID string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, invoiceID, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockInvoiceRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockSequenceRepository is a mock type for the SequenceRepository interface
type MockSequenceRepository struct {
	mock.Mock
}

func (m *MockSequenceRepository) NextSequenceInTx(ctx context.Context, tx pgx.Tx, scope string, kind string) (int64, error) {
	args := m.Called(ctx, tx, scope, kind)
	return args.Get(0).(int64), args.Error(1)
}

// MockCurrencyLockRepository is a mock type for the CurrencyLockRepository interface
type MockCurrencyLockRepository struct {
	mock.Mock
}

func (m *MockCurrencyLockRepository) AcquireInTx(ctx context.Context, tx pgx.Tx, tenantID string, currencyCode string, lockedAt time.Time) error {
	args := m.Called(ctx, tx, tenantID, currencyCode, lockedAt)
	return args.Error(0)
}

func (m *MockCurrencyLockRepository) FindLockByTenant(ctx context.Context, tenantID string) (*domain.CurrencyLock, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyLock), args.Error(1)
}

// MockCreditNoteRepository is a mock type for the CreditNoteRepositoryFacade interface
type MockCreditNoteRepository struct {
	mock.Mock
}

func (m *MockCreditNoteRepository) FindCreditNoteByID(ctx context.Context, creditNoteID string) (*domain.CreditNote, error) {
	args := m.Called(ctx, creditNoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditNote), args.Error(1)
}

func (m *MockCreditNoteRepository) FindCreditNoteByVerificationID(ctx context.Context, verificationID string) (*domain.CreditNote, error) {
	args := m.Called(ctx, verificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditNote), args.Error(1)
}

func (m *MockCreditNoteRepository) FindCreditNotesByInvoiceID(ctx context.Context, invoiceID string) ([]domain.CreditNote, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreditNote), args.Error(1)
}

func (m *MockCreditNoteRepository) SumCreditedAmountByInvoiceID(ctx context.Context, invoiceID string) (decimal.Decimal, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCreditNoteRepository) SaveCreditNoteInTx(ctx context.Context, tx pgx.Tx, creditNote domain.CreditNote) error {
	args := m.Called(ctx, tx, creditNote)
	return args.Error(0)
}

// MockClientRepository is a mock type for the ClientRepositoryFacade interface
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) ListClientsByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.Client, *string, error) {
	args := m.Called(ctx, tenantID, limit, nextToken)
	var clients []domain.Client
	if args.Get(0) != nil {
		clients = args.Get(0).([]domain.Client)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return clients, token, args.Error(2)
}

func (m *MockClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) DeactivateClient(ctx context.Context, clientID string, updatedBy string) error {
	args := m.Called(ctx, clientID, updatedBy)
	return args.Error(0)
}

// MockTenantRepository is a mock type for the TenantRepositoryFacade interface
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) SaveTenant(ctx context.Context, tenant domain.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantRepository) UpdateTenant(ctx context.Context, tenant domain.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) AddMember(ctx context.Context, member domain.TenantMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockTenantRepository) FindMemberRole(ctx context.Context, userID string, tenantID string) (domain.TenantRole, error) {
	args := m.Called(ctx, userID, tenantID)
	return args.Get(0).(domain.TenantRole), args.Error(1)
}

func (m *MockTenantRepository) SaveOrganization(ctx context.Context, org domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockTenantRepository) FindOrganizationByID(ctx context.Context, orgID string) (*domain.Organization, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) MarkEmailVerified(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockAuditRepository is a mock type for the AuditRepository interface
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.AuditEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) ListEntriesByEntity(ctx context.Context, entityID string, limit int) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, entityID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditEntry), args.Error(1)
}

// MockOutboxRepository is a mock type for the OutboxRepository interface
type MockOutboxRepository struct {
	mock.Mock
}

func (m *MockOutboxRepository) SaveEventInTx(ctx context.Context, tx pgx.Tx, event domain.OutboxEvent) error {
	args := m.Called(ctx, tx, event)
	return args.Error(0)
}

func (m *MockOutboxRepository) ListPendingEvents(ctx context.Context, limit int) ([]domain.OutboxEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OutboxEvent), args.Error(1)
}

func (m *MockOutboxRepository) MarkEventDispatched(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

// MockTenantService is a mock type for the TenantSvcFacade interface
type MockTenantService struct {
	mock.Mock
}

func (m *MockTenantService) AuthorizeUserAction(ctx context.Context, userID string, tenantID string, required domain.TenantRole) error {
	args := m.Called(ctx, userID, tenantID, required)
	return args.Error(0)
}

func (m *MockTenantService) CreateTenant(ctx context.Context, req dto.CreateTenantRequest, creatorUserID string) (*domain.Tenant, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantService) GetTenantByID(ctx context.Context, tenantID string, requestingUserID string) (*domain.Tenant, error) {
	args := m.Called(ctx, tenantID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantService) AddMember(ctx context.Context, tenantID string, userID string, role domain.TenantRole, actorUserID string) error {
	args := m.Called(ctx, tenantID, userID, role, actorUserID)
	return args.Error(0)
}

func (m *MockTenantService) CreateOrganization(ctx context.Context, tenantID string, req dto.CreateOrganizationRequest, actorUserID string) (*domain.Organization, error) {
	args := m.Called(ctx, tenantID, req, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockTenantService) GetOrganizationByID(ctx context.Context, tenantID string, orgID string, requestingUserID string) (*domain.Organization, error) {
	args := m.Called(ctx, tenantID, orgID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockTenantService) CheckIssuanceAllowance(ctx context.Context, tenantID string) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

// MockIdentityVerifier is a mock type for the IdentityVerifierSvc interface
type MockIdentityVerifier struct {
	mock.Mock
}

func (m *MockIdentityVerifier) IsEmailVerified(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

// MockVerificationService is a mock type for the VerificationSvcFacade interface
type MockVerificationService struct {
	mock.Mock
}

func (m *MockVerificationService) MintToken() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *MockVerificationService) Verify(ctx context.Context, token string) dto.VerifyResponse {
	args := m.Called(ctx, token)
	return args.Get(0).(dto.VerifyResponse)
}

// mockRepos bundles the repository mocks into a provider so test suites can
// build services the same way the container does.
type mockRepos struct {
	invoice      *MockInvoiceRepository
	creditNote   *MockCreditNoteRepository
	sequence     *MockSequenceRepository
	currencyLock *MockCurrencyLockRepository
	client       *MockClientRepository
	tenant       *MockTenantRepository
	user         *MockUserRepository
	audit        *MockAuditRepository
	outbox       *MockOutboxRepository
}

func newMockRepos() *mockRepos {
	return &mockRepos{
		invoice:      new(MockInvoiceRepository),
		creditNote:   new(MockCreditNoteRepository),
		sequence:     new(MockSequenceRepository),
		currencyLock: new(MockCurrencyLockRepository),
		client:       new(MockClientRepository),
		tenant:       new(MockTenantRepository),
		user:         new(MockUserRepository),
		audit:        new(MockAuditRepository),
		outbox:       new(MockOutboxRepository),
	}
}

func (r *mockRepos) provider() *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		InvoiceRepo:      r.invoice,
		CreditNoteRepo:   r.creditNote,
		SequenceRepo:     r.sequence,
		CurrencyLockRepo: r.currencyLock,
		ClientRepo:       r.client,
		TenantRepo:       r.tenant,
		UserRepo:         r.user,
		AuditRepo:        r.audit,
		OutboxRepo:       r.outbox,
	}
}
