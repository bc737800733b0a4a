package seal_test

import (
	"testing"
	"time"

	"github.com/invara/invoicing_backend/internal/core/domain"
	"github.com/invara/invoicing_backend/internal/core/seal"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sealedInvoice() *domain.Invoice {
	issuedAt := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	taxID := "DE123456789"
	return &domain.Invoice{
		InvoiceID:     "inv-1",
		TenantID:      "t-1",
		ClientID:      "c-1",
		Status:        domain.StatusIssued,
		DisplayNumber: "INV-0001",
		CurrencyCode:  "EUR",
		TotalAmount:   decimal.RequireFromString("143.00"),
		IssuedAt:      &issuedAt,
		IssuerSnapshot: &domain.PartySnapshot{
			SchemaVersion: domain.SnapshotSchemaVersion,
			LegalName:     "Acme GmbH",
			TaxID:         &taxID,
			VATRegistered: true,
		},
		RecipientSnapshot: &domain.PartySnapshot{
			SchemaVersion: domain.SnapshotSchemaVersion,
			LegalName:     "Client Ltd",
		},
		LineItems: []domain.LineItem{
			{
				Description: "Consulting",
				Quantity:    decimal.NewFromInt(2),
				UnitPrice:   decimal.RequireFromString("50.00"),
				TaxRate:     decimal.NewFromInt(10),
			},
			{
				Description: "Support",
				Quantity:    decimal.NewFromInt(1),
				UnitPrice:   decimal.RequireFromString("30.00"),
				TaxRate:     decimal.NewFromInt(10),
			},
		},
	}
}

func TestSealInvoice_Deterministic(t *testing.T) {
	inv := sealedInvoice()

	h1 := seal.SealInvoice(inv)
	h2 := seal.SealInvoice(inv)

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
	assert.Regexp(t, "^[0-9a-f]{64}$", h1)
}

func TestSealInvoice_SensitiveToContent(t *testing.T) {
	base := seal.SealInvoice(sealedInvoice())

	tamper := []struct {
		name   string
		mutate func(*domain.Invoice)
	}{
		{"total amount", func(i *domain.Invoice) { i.TotalAmount = decimal.RequireFromString("143.01") }},
		{"display number", func(i *domain.Invoice) { i.DisplayNumber = "INV-0002" }},
		{"currency", func(i *domain.Invoice) { i.CurrencyCode = "USD" }},
		{"line description", func(i *domain.Invoice) { i.LineItems[0].Description = "Consulting!" }},
		{"line price", func(i *domain.Invoice) { i.LineItems[1].UnitPrice = decimal.RequireFromString("30.01") }},
		{"line order", func(i *domain.Invoice) { i.LineItems[0], i.LineItems[1] = i.LineItems[1], i.LineItems[0] }},
		{"issuer name", func(i *domain.Invoice) { i.IssuerSnapshot.LegalName = "Acme AG" }},
		{"issuer tax id dropped", func(i *domain.Invoice) { i.IssuerSnapshot.TaxID = nil }},
		{"recipient name", func(i *domain.Invoice) { i.RecipientSnapshot.LegalName = "Other Ltd" }},
		{"issued at", func(i *domain.Invoice) {
			shifted := i.IssuedAt.Add(time.Second)
			i.IssuedAt = &shifted
		}},
	}

	for _, tt := range tamper {
		t.Run(tt.name, func(t *testing.T) {
			inv := sealedInvoice()
			tt.mutate(inv)
			assert.NotEqual(t, base, seal.SealInvoice(inv))
		})
	}
}

func TestSealInvoice_MutableFieldsNotHashed(t *testing.T) {
	base := seal.SealInvoice(sealedInvoice())

	// Lifecycle fields move after issuance and must not break the seal.
	inv := sealedInvoice()
	inv.Status = domain.StatusPaid
	inv.AmountPaid = decimal.RequireFromString("143.00")
	assert.Equal(t, base, seal.SealInvoice(inv))
}

func TestVerifyInvoice(t *testing.T) {
	inv := sealedInvoice()
	inv.InvoiceHash = seal.SealInvoice(inv)
	require.True(t, seal.VerifyInvoice(inv))

	// A hashed field changed after sealing.
	inv.TotalAmount = decimal.RequireFromString("999.00")
	assert.False(t, seal.VerifyInvoice(inv))

	// An unsealed record never verifies.
	draft := sealedInvoice()
	draft.InvoiceHash = ""
	assert.False(t, seal.VerifyInvoice(draft))
}

func sealedCreditNote() *domain.CreditNote {
	return &domain.CreditNote{
		CreditNoteID:      "cn-1",
		TenantID:          "t-1",
		OriginalInvoiceID: "inv-1",
		DisplayNumber:     "CN-0001",
		CurrencyCode:      "EUR",
		Amount:            decimal.RequireFromString("50.00"),
		Reason:            "partial refund",
		IssuedAt:          time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC),
		IssuerSnapshot: &domain.PartySnapshot{
			SchemaVersion: domain.SnapshotSchemaVersion,
			LegalName:     "Acme GmbH",
		},
		RecipientSnapshot: &domain.PartySnapshot{
			SchemaVersion: domain.SnapshotSchemaVersion,
			LegalName:     "Client Ltd",
		},
	}
}

func TestSealCreditNote(t *testing.T) {
	cn := sealedCreditNote()
	h := seal.SealCreditNote(cn)
	assert.Len(t, h, 64)

	cn.CreditNoteHash = h
	require.True(t, seal.VerifyCreditNote(cn))

	cn.Amount = decimal.RequireFromString("50.01")
	assert.False(t, seal.VerifyCreditNote(cn))
}

func TestSealCreditNote_DiffersFromInvoice(t *testing.T) {
	// The doc-type line keeps the two payload spaces disjoint even for
	// otherwise identical field values.
	inv := sealedInvoice()
	cn := sealedCreditNote()
	assert.NotEqual(t, seal.SealInvoice(inv), seal.SealCreditNote(cn))
}

func TestSealInvoice_TimestampStoragePrecision(t *testing.T) {
	// timestamptz stores microseconds. A seal computed over a nanosecond
	// timestamp could never be reproduced from the stored row, so issuance
	// truncates before sealing.
	fine := sealedInvoice()
	at := time.Date(2025, 3, 14, 9, 30, 0, 123456789, time.UTC)
	fine.IssuedAt = &at

	stored := sealedInvoice()
	trunc := at.Truncate(time.Microsecond)
	stored.IssuedAt = &trunc

	assert.NotEqual(t, seal.SealInvoice(fine), seal.SealInvoice(stored))

	// A row sealed at microsecond precision verifies after the round-trip.
	stored.InvoiceHash = seal.SealInvoice(stored)
	assert.True(t, seal.VerifyInvoice(stored))
}

func TestSealInvoice_NilSnapshotsDistinct(t *testing.T) {
	withSnap := sealedInvoice()
	withoutSnap := sealedInvoice()
	withoutSnap.IssuerSnapshot = nil
	assert.NotEqual(t, seal.SealInvoice(withSnap), seal.SealInvoice(withoutSnap))
}
