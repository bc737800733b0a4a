package mapping

import (
	"github.com/invara/invoicing_backend/internal/core/domain"
	"github.com/invara/invoicing_backend/internal/models"
)

// ToModelCreditNote converts a domain CreditNote to a model CreditNote.
func ToModelCreditNote(d domain.CreditNote) models.CreditNote {
	return models.CreditNote{
		CreditNoteID:      d.CreditNoteID,
		TenantID:          d.TenantID,
		OriginalInvoiceID: d.OriginalInvoiceID,
		SequenceNumber:    d.SequenceNumber,
		DisplayNumber:     d.DisplayNumber,
		CurrencyCode:      d.CurrencyCode,
		Amount:            d.Amount,
		Reason:            d.Reason,
		IssuedAt:          d.IssuedAt,
		IssuerSnapshot:    ToModelSnapshot(d.IssuerSnapshot),
		RecipientSnapshot: ToModelSnapshot(d.RecipientSnapshot),
		CreditNoteHash:    d.CreditNoteHash,
		VerificationID:    d.VerificationID,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCreditNote converts a model CreditNote to a domain CreditNote.
func ToDomainCreditNote(m models.CreditNote) domain.CreditNote {
	return domain.CreditNote{
		CreditNoteID:      m.CreditNoteID,
		TenantID:          m.TenantID,
		OriginalInvoiceID: m.OriginalInvoiceID,
		SequenceNumber:    m.SequenceNumber,
		DisplayNumber:     m.DisplayNumber,
		CurrencyCode:      m.CurrencyCode,
		Amount:            m.Amount,
		Reason:            m.Reason,
		IssuedAt:          m.IssuedAt,
		IssuerSnapshot:    ToDomainSnapshot(m.IssuerSnapshot),
		RecipientSnapshot: ToDomainSnapshot(m.RecipientSnapshot),
		CreditNoteHash:    m.CreditNoteHash,
		VerificationID:    m.VerificationID,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCreditNoteSlice converts a slice of model CreditNotes.
func ToDomainCreditNoteSlice(ms []models.CreditNote) []domain.CreditNote {
	ds := make([]domain.CreditNote, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCreditNote(m)
	}
	return ds
}
