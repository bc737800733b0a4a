package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	InvoiceRepo      InvoiceRepositoryWithTx
	CreditNoteRepo   CreditNoteRepositoryFacade
	SequenceRepo     SequenceRepository
	CurrencyLockRepo CurrencyLockRepository
	ClientRepo       ClientRepositoryFacade
	TenantRepo       TenantRepositoryFacade
	UserRepo         UserRepositoryFacade
	AuditRepo        AuditRepository
	OutboxRepo       OutboxRepository
}
