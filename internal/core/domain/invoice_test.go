package domain_test

import (
	"testing"

	"github.com/invara/invoicing_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	statuses := []domain.InvoiceStatus{
		domain.StatusDraft,
		domain.StatusIssued,
		domain.StatusSent,
		domain.StatusViewed,
		domain.StatusPaid,
		domain.StatusVoided,
		domain.StatusCredited,
	}

	// The complete set of legal moves. Every other (from, to) pair,
	// including everything out of the terminal VOIDED and CREDITED states,
	// must be rejected.
	legal := map[domain.InvoiceStatus]map[domain.InvoiceStatus]bool{
		domain.StatusDraft:  {domain.StatusIssued: true},
		domain.StatusIssued: {domain.StatusSent: true, domain.StatusViewed: true, domain.StatusPaid: true, domain.StatusVoided: true},
		domain.StatusSent:   {domain.StatusViewed: true, domain.StatusPaid: true, domain.StatusVoided: true},
		domain.StatusViewed: {domain.StatusPaid: true, domain.StatusVoided: true},
		domain.StatusPaid:   {domain.StatusCredited: true},
	}

	for _, from := range statuses {
		for _, to := range statuses {
			want := legal[from][to]
			assert.Equalf(t, want, domain.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestInvoiceStatus_IsTerminal(t *testing.T) {
	assert.True(t, domain.StatusVoided.IsTerminal())
	assert.True(t, domain.StatusCredited.IsTerminal())
	assert.False(t, domain.StatusDraft.IsTerminal())
	assert.False(t, domain.StatusIssued.IsTerminal())
	assert.False(t, domain.StatusPaid.IsTerminal())
}

func TestFormatDisplayNumber(t *testing.T) {
	assert.Equal(t, "INV-0001", domain.FormatDisplayNumber("INV", 1))
	assert.Equal(t, "INV-0042", domain.FormatDisplayNumber("INV", 42))
	assert.Equal(t, "CN-0007", domain.FormatDisplayNumber("CN", 7))
	// The pad is a minimum, not a cap.
	assert.Equal(t, "INV-12345", domain.FormatDisplayNumber("INV", 12345))
}

func TestOwner_Construction(t *testing.T) {
	personal, err := domain.NewPersonalOwner("user-1")
	assert.NoError(t, err)
	assert.Equal(t, domain.OwnerPersonal, personal.Kind())
	userID, ok := personal.UserID()
	assert.True(t, ok)
	assert.Equal(t, "user-1", userID)
	_, ok = personal.OrganizationID()
	assert.False(t, ok)

	org, err := domain.NewOrganizationOwner("org-1")
	assert.NoError(t, err)
	assert.Equal(t, domain.OwnerOrganization, org.Kind())
	orgID, ok := org.OrganizationID()
	assert.True(t, ok)
	assert.Equal(t, "org-1", orgID)

	_, err = domain.NewPersonalOwner("")
	assert.ErrorIs(t, err, domain.ErrInvalidOwner)
	_, err = domain.NewOrganizationOwner("")
	assert.ErrorIs(t, err, domain.ErrInvalidOwner)

	assert.True(t, domain.Owner{}.IsZero())
	assert.False(t, personal.IsZero())
}

func TestOwner_SequenceScope(t *testing.T) {
	personal, _ := domain.NewPersonalOwner("user-1")
	org, _ := domain.NewOrganizationOwner("org-1")

	// Personal invoices share the tenant counter; each organization gets its own.
	assert.Equal(t, "tenant:t-1", personal.SequenceScope("t-1"))
	assert.Equal(t, "org:org-1", org.SequenceScope("t-1"))
}

func TestLineItem_ComputeAmount(t *testing.T) {
	li := domain.LineItem{
		Quantity:        decimal.NewFromInt(2),
		UnitPrice:       decimal.RequireFromString("50.00"),
		TaxRate:         decimal.NewFromInt(10),
		DiscountPercent: decimal.Zero,
	}
	// 2 * 50.00 = 100.00, +10% tax = 110.00
	assert.True(t, li.ComputeAmount().Equal(decimal.RequireFromString("110.00")))
	assert.True(t, li.NetAmount().Equal(decimal.RequireFromString("100.00")))
	assert.True(t, li.TaxPortion().Equal(decimal.RequireFromString("10.00")))
}

func TestLineItem_ComputeAmount_WithDiscount(t *testing.T) {
	li := domain.LineItem{
		Quantity:        decimal.NewFromInt(4),
		UnitPrice:       decimal.RequireFromString("25.00"),
		TaxRate:         decimal.NewFromInt(20),
		DiscountPercent: decimal.NewFromInt(10),
	}
	// 4 * 25.00 = 100.00, -10% = 90.00, +20% tax = 108.00
	assert.True(t, li.NetAmount().Equal(decimal.RequireFromString("90.00")))
	assert.True(t, li.TaxPortion().Equal(decimal.RequireFromString("18.00")))
	assert.True(t, li.ComputeAmount().Equal(decimal.RequireFromString("108.00")))
}

func TestLineItem_ComputeAmount_Rounding(t *testing.T) {
	li := domain.LineItem{
		Quantity:        decimal.RequireFromString("3"),
		UnitPrice:       decimal.RequireFromString("0.333"),
		TaxRate:         decimal.Zero,
		DiscountPercent: decimal.Zero,
	}
	// 0.999 rounds to 1.00
	assert.True(t, li.ComputeAmount().Equal(decimal.RequireFromString("1.00")))
}

func TestTenantRole_Covers(t *testing.T) {
	assert.True(t, domain.RoleAdmin.Covers(domain.RoleReadOnly))
	assert.True(t, domain.RoleAdmin.Covers(domain.RoleMember))
	assert.True(t, domain.RoleAdmin.Covers(domain.RoleAdmin))
	assert.True(t, domain.RoleMember.Covers(domain.RoleReadOnly))
	assert.False(t, domain.RoleMember.Covers(domain.RoleAdmin))
	assert.False(t, domain.RoleReadOnly.Covers(domain.RoleMember))
	assert.False(t, domain.RoleRemoved.Covers(domain.RoleReadOnly))
}

func TestInvoice_Outstanding(t *testing.T) {
	inv := domain.Invoice{AmountPaid: decimal.RequireFromString("100.00")}
	assert.True(t, inv.Outstanding(decimal.Zero).Equal(decimal.RequireFromString("100.00")))
	assert.True(t, inv.Outstanding(decimal.RequireFromString("40.00")).Equal(decimal.RequireFromString("60.00")))
}

func TestPartySnapshot_Clone(t *testing.T) {
	city := "Berlin"
	s := &domain.PartySnapshot{
		SchemaVersion: domain.SnapshotSchemaVersion,
		LegalName:     "Acme GmbH",
		City:          &city,
	}

	c := s.Clone()
	assert.Equal(t, s.LegalName, c.LegalName)
	assert.Equal(t, *s.City, *c.City)

	// Mutating the clone must not reach back into the original.
	*c.City = "Hamburg"
	assert.Equal(t, "Berlin", *s.City)

	var nilSnap *domain.PartySnapshot
	assert.Nil(t, nilSnap.Clone())
}
