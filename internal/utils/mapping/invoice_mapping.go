package mapping

import (
	"github.com/invara/invoicing_backend/internal/core/domain"
	"github.com/invara/invoicing_backend/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice. The owner
// union flattens into two nullable columns.
func ToModelInvoice(d domain.Invoice) models.Invoice {
	m := models.Invoice{
		InvoiceID:         d.InvoiceID,
		TenantID:          d.TenantID,
		ClientID:          d.ClientID,
		Status:            models.InvoiceStatus(d.Status),
		SequenceNumber:    d.SequenceNumber,
		DisplayNumber:     d.DisplayNumber,
		CurrencyCode:      d.CurrencyCode,
		Subtotal:          d.Subtotal,
		TaxAmount:         d.TaxAmount,
		DiscountAmount:    d.DiscountAmount,
		TotalAmount:       d.TotalAmount,
		AmountPaid:        d.AmountPaid,
		IssuedAt:          d.IssuedAt,
		VoidedAt:          d.VoidedAt,
		IssuerSnapshot:    ToModelSnapshot(d.IssuerSnapshot),
		RecipientSnapshot: ToModelSnapshot(d.RecipientSnapshot),
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
	if userID, ok := d.Owner.UserID(); ok {
		m.OwnerUserID = &userID
	}
	if orgID, ok := d.Owner.OrganizationID(); ok {
		m.OwnerOrgID = &orgID
	}
	if d.VoidReason != "" {
		reason := d.VoidReason
		m.VoidReason = &reason
	}
	if d.InvoiceHash != "" {
		hash := d.InvoiceHash
		m.InvoiceHash = &hash
	}
	if d.VerificationID != "" {
		vid := d.VerificationID
		m.VerificationID = &vid
	}
	return m
}

// ToDomainInvoice converts a model Invoice to a domain Invoice.
func ToDomainInvoice(m models.Invoice) (domain.Invoice, error) {
	var owner domain.Owner
	var err error
	if m.OwnerOrgID != nil {
		owner, err = domain.NewOrganizationOwner(*m.OwnerOrgID)
	} else if m.OwnerUserID != nil {
		owner, err = domain.NewPersonalOwner(*m.OwnerUserID)
	} else {
		err = domain.ErrInvalidOwner
	}
	if err != nil {
		return domain.Invoice{}, err
	}

	d := domain.Invoice{
		InvoiceID:         m.InvoiceID,
		TenantID:          m.TenantID,
		Owner:             owner,
		ClientID:          m.ClientID,
		Status:            domain.InvoiceStatus(m.Status),
		SequenceNumber:    m.SequenceNumber,
		DisplayNumber:     m.DisplayNumber,
		CurrencyCode:      m.CurrencyCode,
		Subtotal:          m.Subtotal,
		TaxAmount:         m.TaxAmount,
		DiscountAmount:    m.DiscountAmount,
		TotalAmount:       m.TotalAmount,
		AmountPaid:        m.AmountPaid,
		IssuedAt:          m.IssuedAt,
		VoidedAt:          m.VoidedAt,
		IssuerSnapshot:    ToDomainSnapshot(m.IssuerSnapshot),
		RecipientSnapshot: ToDomainSnapshot(m.RecipientSnapshot),
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
	if m.VoidReason != nil {
		d.VoidReason = *m.VoidReason
	}
	if m.InvoiceHash != nil {
		d.InvoiceHash = *m.InvoiceHash
	}
	if m.VerificationID != nil {
		d.VerificationID = *m.VerificationID
	}
	return d, nil
}

// ToModelLineItem converts a domain LineItem to a model LineItem.
func ToModelLineItem(d domain.LineItem) models.LineItem {
	return models.LineItem{
		LineItemID:      d.LineItemID,
		InvoiceID:       d.InvoiceID,
		Position:        d.Position,
		Description:     d.Description,
		Quantity:        d.Quantity,
		UnitPrice:       d.UnitPrice,
		TaxRate:         d.TaxRate,
		DiscountPercent: d.DiscountPercent,
		Amount:          d.Amount,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLineItem converts a model LineItem to a domain LineItem.
func ToDomainLineItem(m models.LineItem) domain.LineItem {
	return domain.LineItem{
		LineItemID:      m.LineItemID,
		InvoiceID:       m.InvoiceID,
		Position:        m.Position,
		Description:     m.Description,
		Quantity:        m.Quantity,
		UnitPrice:       m.UnitPrice,
		TaxRate:         m.TaxRate,
		DiscountPercent: m.DiscountPercent,
		Amount:          m.Amount,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLineItemSlice converts a slice of model LineItems.
func ToDomainLineItemSlice(ms []models.LineItem) []domain.LineItem {
	ds := make([]domain.LineItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLineItem(m)
	}
	return ds
}
