// Package seal computes the tamper-evidence hash over a sealed document's
// immutable content. The canonical byte layout is versioned: changing it
// requires a new version constant, never a silent change, since every
// previously issued hash must stay reproducible for verification.
package seal

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/invara/invoicing_backend/internal/core/domain"
)

// PayloadVersion is the current canonical layout version. It is the first
// line of every payload so a future layout can coexist with sealed v1 records.
const PayloadVersion = 1

// fieldSep separates fields inside one record line. ASCII unit separator:
// cannot appear in sane descriptions or identity fields, and keeps the
// layout unambiguous without escaping.
const fieldSep = "\x1f"

// SealInvoice returns the hex-encoded SHA-256 over the invoice's canonical
// payload. The invoice must already carry its display number, issuance
// timestamp, snapshots and line items in stored order.
func SealInvoice(inv *domain.Invoice) string {
	var b strings.Builder
	writeLine(&b, "v", strconv.Itoa(PayloadVersion))
	writeLine(&b, "doc", "invoice")
	writeLine(&b, "id", inv.InvoiceID)
	writeLine(&b, "number", inv.DisplayNumber)
	writeLine(&b, "currency", inv.CurrencyCode)
	writeLine(&b, "total", inv.TotalAmount.StringFixed(2))
	writeLine(&b, "client", inv.ClientID)
	writeLine(&b, "issued_at", canonicalTime(inv.IssuedAt))
	writeLine(&b, "issuer", snapshotRecord(inv.IssuerSnapshot))
	writeLine(&b, "recipient", snapshotRecord(inv.RecipientSnapshot))
	for _, li := range inv.LineItems {
		writeLine(&b, "line", strings.Join([]string{
			li.Description,
			li.Quantity.String(),
			li.UnitPrice.StringFixed(2),
			li.TaxRate.StringFixed(2),
		}, fieldSep))
	}
	return digest(b.String())
}

// SealCreditNote returns the hex-encoded SHA-256 over the credit note's
// canonical payload.
func SealCreditNote(cn *domain.CreditNote) string {
	var b strings.Builder
	writeLine(&b, "v", strconv.Itoa(PayloadVersion))
	writeLine(&b, "doc", "credit_note")
	writeLine(&b, "id", cn.CreditNoteID)
	writeLine(&b, "number", cn.DisplayNumber)
	writeLine(&b, "currency", cn.CurrencyCode)
	writeLine(&b, "amount", cn.Amount.StringFixed(2))
	writeLine(&b, "original_invoice", cn.OriginalInvoiceID)
	writeLine(&b, "issued_at", cn.IssuedAt.UTC().Format(time.RFC3339Nano))
	writeLine(&b, "reason", cn.Reason)
	writeLine(&b, "issuer", snapshotRecord(cn.IssuerSnapshot))
	writeLine(&b, "recipient", snapshotRecord(cn.RecipientSnapshot))
	return digest(b.String())
}

// VerifyInvoice recomputes the invoice hash and compares it to the stored
// value. A false result means a hashed field changed after sealing.
func VerifyInvoice(inv *domain.Invoice) bool {
	return inv.InvoiceHash != "" && SealInvoice(inv) == inv.InvoiceHash
}

// VerifyCreditNote recomputes the credit note hash against the stored value.
func VerifyCreditNote(cn *domain.CreditNote) bool {
	return cn.CreditNoteHash != "" && SealCreditNote(cn) == cn.CreditNoteHash
}

func digest(payload string) string {
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

func writeLine(b *strings.Builder, key, value string) {
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(value)
	b.WriteByte('\n')
}

func canonicalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// snapshotRecord flattens a snapshot into one record line. Nil optionals
// render empty, which is distinct from any present value because the field
// positions are fixed.
func snapshotRecord(s *domain.PartySnapshot) string {
	if s == nil {
		return ""
	}
	vat := "0"
	if s.VATRegistered {
		vat = "1"
	}
	return strings.Join([]string{
		strconv.Itoa(s.SchemaVersion),
		s.LegalName,
		deref(s.TaxID),
		deref(s.RegistrationNumber),
		vat,
		deref(s.AddressLine1),
		deref(s.AddressLine2),
		deref(s.City),
		deref(s.PostalCode),
		deref(s.Country),
		deref(s.Email),
	}, fieldSep)
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
