package services

import (
	"time"

	portsrepo "github.com/invara/invoicing_backend/internal/core/ports/repositories"
	portssvc "github.com/invara/invoicing_backend/internal/core/ports/services"
)

// NewServiceContainer wires all services over the repository provider.
// Construction order follows the dependency direction: user and tenant
// services first, then the engine services that consume them.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) *portssvc.ServiceContainer {
	userSvc := NewUserService(repos.UserRepo)
	tenantSvc := NewTenantService(repos.TenantRepo, repos.InvoiceRepo)
	clientSvc := NewClientService(repos.ClientRepo, tenantSvc)
	verificationSvc := NewVerificationService(repos.InvoiceRepo, repos.CreditNoteRepo)
	invoiceSvc := NewInvoiceService(repos, tenantSvc, userSvc, verificationSvc)
	creditNoteSvc := NewCreditNoteService(repos, tenantSvc, userSvc, verificationSvc)
	tokenSvc := NewTokenService(jwtSecret, jwtExpiry, jwtIssuer)

	return &portssvc.ServiceContainer{
		Invoice:      invoiceSvc,
		CreditNote:   creditNoteSvc,
		Verification: verificationSvc,
		Tenant:       tenantSvc,
		Client:       clientSvc,
		User:         userSvc,
		Token:        tokenSvc,
	}
}
