package domain

import "github.com/shopspring/decimal"

// LineItem is a single billable row on an invoice. Line items are part of
// the hashed content and become immutable with their invoice.
type LineItem struct {
	LineItemID      string          `json:"lineItemID"` // Primary key (UUID)
	InvoiceID       string          `json:"invoiceID"`  // FK -> invoices
	Position        int             `json:"position"`   // Stored order, hashed in this order
	Description     string          `json:"description"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	TaxRate         decimal.Decimal `json:"taxRate"`         // Percent, e.g. 10 for 10%
	DiscountPercent decimal.Decimal `json:"discountPercent"` // Percent
	Amount          decimal.Decimal `json:"amount"`          // Computed: qty*price less discount plus tax
	AuditFields
}

var oneHundred = decimal.NewFromInt(100)

// ComputeAmount derives the line amount from quantity, unit price, discount
// and tax. The result is rounded to two decimal places.
func (li *LineItem) ComputeAmount() decimal.Decimal {
	gross := li.Quantity.Mul(li.UnitPrice)
	discounted := gross.Sub(gross.Mul(li.DiscountPercent).Div(oneHundred))
	total := discounted.Add(discounted.Mul(li.TaxRate).Div(oneHundred))
	return total.Round(2)
}

// NetAmount returns the line amount before tax, after discount.
func (li *LineItem) NetAmount() decimal.Decimal {
	gross := li.Quantity.Mul(li.UnitPrice)
	return gross.Sub(gross.Mul(li.DiscountPercent).Div(oneHundred)).Round(2)
}

// TaxPortion returns the tax component of the line amount.
func (li *LineItem) TaxPortion() decimal.Decimal {
	net := li.NetAmount()
	return net.Mul(li.TaxRate).Div(oneHundred).Round(2)
}
