package finance

import (
	"github.com/reelworks/backend/internal/domain/shared/listing"
	"github.com/shopspring/decimal"
)

// InvoiceFilter narrows an invoice collection before aggregation. The
// sentinel value "all" (or an empty string) disables a dimension.
type InvoiceFilter struct {
	EditorID string
	Month    string
}

// matches reports whether the invoice passes every active dimension.
func (f InvoiceFilter) matches(inv Invoice) bool {
	if f.EditorID != "" && f.EditorID != listing.Sentinel && inv.EditorID != f.EditorID {
		return false
	}
	if f.Month != "" && f.Month != listing.Sentinel && inv.Month != f.Month {
		return false
	}
	return true
}

// InvoiceTotals is the aggregate view over a filtered invoice collection.
// MatchCount tells callers how many invoices survived the filter: when it is
// zero the totals are all zero, and whether to fall back to the unfiltered
// set is the caller's decision, never this package's.
type InvoiceTotals struct {
	TotalAmount     decimal.Decimal `json:"total_amount"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalPaid       decimal.Decimal `json:"total_paid"`
	TotalPending    decimal.Decimal `json:"total_pending"`
	MatchCount      int             `json:"match_count"`
}

// Aggregate sums total, deduction, paid and remaining amounts over the
// invoices passing the filter. An empty filtered set yields all-zero sums,
// not an error.
func Aggregate(invoices []Invoice, filter InvoiceFilter) InvoiceTotals {
	totals := InvoiceTotals{
		TotalAmount:     decimal.Zero,
		TotalDeductions: decimal.Zero,
		TotalPaid:       decimal.Zero,
		TotalPending:    decimal.Zero,
	}
	for _, inv := range invoices {
		if !filter.matches(inv) {
			continue
		}
		totals.MatchCount++
		totals.TotalAmount = totals.TotalAmount.Add(inv.TotalAmount)
		totals.TotalDeductions = totals.TotalDeductions.Add(inv.TotalDeductions)
		totals.TotalPaid = totals.TotalPaid.Add(inv.PaidAmount)
		totals.TotalPending = totals.TotalPending.Add(inv.RemainingAmount)
	}
	return totals
}
