package finance

import (
	"sort"

	"github.com/shopspring/decimal"
)

// MonthBucket is one month of the invoice-item breakdown. Months are opaque
// labels taken from invoice records, never re-derived from dates; the
// calculator assumes all labels share one format (e.g. "January 2025").
type MonthBucket struct {
	Month        string          `json:"month"`
	ProjectCount int             `json:"project_count"`
	Total        decimal.Decimal `json:"total"`
	Paid         decimal.Decimal `json:"paid"`
	Pending      decimal.Decimal `json:"pending"`
}

// MonthlyBreakdown groups invoice line items by their invoice month. Per
// month: Total sums the item amounts, Paid sums paid_amount of that month's
// paid invoices, and Pending is Total minus Paid. Pending is not clamped at
// zero: a negative value signals inconsistent upstream data and must reach
// whoever audits the books rather than be hidden.
//
// The result is ordered by month label, lexicographically descending, which
// under uniform labels puts the most recent month first.
func MonthlyBreakdown(items []InvoiceItem, invoices []Invoice) []MonthBucket {
	buckets := make(map[string]*MonthBucket)

	for _, item := range items {
		if item.InvoiceMonth == "" {
			continue
		}
		b := buckets[item.InvoiceMonth]
		if b == nil {
			b = &MonthBucket{
				Month:   item.InvoiceMonth,
				Total:   decimal.Zero,
				Paid:    decimal.Zero,
				Pending: decimal.Zero,
			}
			buckets[item.InvoiceMonth] = b
		}
		b.ProjectCount++
		b.Total = b.Total.Add(item.Amount)
	}

	for _, inv := range invoices {
		if inv.Status != InvoiceStatusPaid {
			continue
		}
		if b, ok := buckets[inv.Month]; ok {
			b.Paid = b.Paid.Add(inv.PaidAmount)
		}
	}

	out := make([]MonthBucket, 0, len(buckets))
	for _, b := range buckets {
		b.Pending = b.Total.Sub(b.Paid)
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month > out[j].Month })
	return out
}

// EnrichItemsWithMonth copies each item's parent invoice month onto the item
// so the breakdown can group without re-resolving parents. Items whose
// parent invoice is unknown keep an empty month and are skipped by the
// breakdown.
func EnrichItemsWithMonth(items []InvoiceItem, invoices []Invoice) []InvoiceItem {
	monthByInvoice := make(map[string]string, len(invoices))
	for _, inv := range invoices {
		monthByInvoice[inv.ID] = inv.Month
	}
	out := make([]InvoiceItem, len(items))
	for i, item := range items {
		item.InvoiceMonth = monthByInvoice[item.InvoiceID]
		out[i] = item
	}
	return out
}
