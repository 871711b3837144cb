package finance

import (
	"github.com/reelworks/backend/internal/domain/shared/rawrecord"
	"github.com/shopspring/decimal"
)

// NormalizeInvoice coerces a raw invoice record into a typed Invoice.
// Numeric fields that are absent or null become zero; present-but-garbage
// values also become zero but are recorded in Warnings, because a silently
// swallowed bad number would corrupt every financial sum downstream. A
// missing status defaults to pending.
func NormalizeInvoice(raw rawrecord.Record) Invoice {
	inv := Invoice{
		ID:          raw.String("id"),
		EditorID:    raw.String("editor_id"),
		ClientID:    raw.String("client_id"),
		Month:       raw.String("month"),
		Status:      InvoiceStatus(raw.StringOr("status", string(InvoiceStatusPending))),
		PaymentType: raw.String("payment_type"),
		CreatedAt:   raw.Time("created_at"),
		DueDate:     raw.Time("due_date"),
		Notes:       raw.String("notes"),
	}
	inv.TotalAmount = amount(raw, "total_amount", &inv.Warnings)
	inv.TotalDeductions = amount(raw, "total_deductions", &inv.Warnings)
	inv.PaidAmount = amount(raw, "paid_amount", &inv.Warnings)
	inv.RemainingAmount = amount(raw, "remaining_amount", &inv.Warnings)
	return inv
}

// NormalizeInvoiceItem coerces a raw line-item record into a typed
// InvoiceItem. InvoiceMonth stays empty here; the application layer fills it
// in when joining items to their parent invoices.
func NormalizeInvoiceItem(raw rawrecord.Record) InvoiceItem {
	item := InvoiceItem{
		ID:        raw.String("id"),
		InvoiceID: raw.String("invoice_id"),
		ItemName:  raw.String("item_name"),
	}
	item.Amount = amount(raw, "amount", &item.Warnings)
	return item
}

// NormalizePayment coerces a raw payment record into a typed Payment. A
// missing status defaults to pending.
func NormalizePayment(raw rawrecord.Record) Payment {
	p := Payment{
		ID:          raw.String("id"),
		Currency:    raw.String("currency"),
		Status:      PaymentStatus(raw.StringOr("status", string(PaymentStatusPending))),
		Date:        raw.Time("date"),
		Description: raw.String("description"),
		Method:      raw.String("payment_method"),
	}
	p.Amount = amount(raw, "amount", &p.Warnings)
	return p
}

func amount(raw rawrecord.Record, key string, warnings *[]string) decimal.Decimal {
	d, ok := raw.Decimal(key)
	if !ok {
		*warnings = append(*warnings, key)
	}
	return d
}
