package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func sampleInvoices() []Invoice {
	return []Invoice{
		{
			ID:              "INV-1",
			EditorID:        "ed-1",
			Month:           "January 2025",
			TotalAmount:     decimal.NewFromInt(1000),
			TotalDeductions: decimal.NewFromInt(100),
			PaidAmount:      decimal.NewFromInt(900),
			RemainingAmount: decimal.Zero,
			Status:          InvoiceStatusPaid,
		},
		{
			ID:              "INV-2",
			EditorID:        "ed-2",
			Month:           "February 2025",
			TotalAmount:     decimal.NewFromInt(500),
			RemainingAmount: decimal.NewFromInt(500),
			Status:          InvoiceStatusPending,
		},
	}
}

func TestAggregate(t *testing.T) {
	t.Run("sums totals over the whole collection", func(t *testing.T) {
		got := Aggregate(sampleInvoices(), InvoiceFilter{})

		assert.Equal(t, 2, got.MatchCount)
		assert.True(t, decimal.NewFromInt(1500).Equal(got.TotalAmount))
		assert.True(t, decimal.NewFromInt(100).Equal(got.TotalDeductions))
		assert.True(t, decimal.NewFromInt(900).Equal(got.TotalPaid))
		assert.True(t, decimal.NewFromInt(500).Equal(got.TotalPending))
	})

	t.Run("sentinel filter equals no filter", func(t *testing.T) {
		unfiltered := Aggregate(sampleInvoices(), InvoiceFilter{})
		sentinel := Aggregate(sampleInvoices(), InvoiceFilter{EditorID: "all", Month: "all"})
		assert.Equal(t, unfiltered, sentinel)
	})

	t.Run("filters by editor", func(t *testing.T) {
		got := Aggregate(sampleInvoices(), InvoiceFilter{EditorID: "ed-2"})

		assert.Equal(t, 1, got.MatchCount)
		assert.True(t, decimal.NewFromInt(500).Equal(got.TotalAmount))
		assert.True(t, got.TotalPaid.IsZero())
	})

	t.Run("filters by month", func(t *testing.T) {
		got := Aggregate(sampleInvoices(), InvoiceFilter{Month: "January 2025"})

		assert.Equal(t, 1, got.MatchCount)
		assert.True(t, decimal.NewFromInt(1000).Equal(got.TotalAmount))
	})

	t.Run("zero matches yield zero sums and MatchCount zero, never a fallback", func(t *testing.T) {
		got := Aggregate(sampleInvoices(), InvoiceFilter{EditorID: "nobody"})

		assert.Equal(t, 0, got.MatchCount)
		assert.True(t, got.TotalAmount.IsZero())
		assert.True(t, got.TotalDeductions.IsZero())
		assert.True(t, got.TotalPaid.IsZero())
		assert.True(t, got.TotalPending.IsZero())
	})

	t.Run("empty input is not an error", func(t *testing.T) {
		got := Aggregate(nil, InvoiceFilter{})
		assert.Equal(t, 0, got.MatchCount)
		assert.True(t, got.TotalAmount.IsZero())
	})
}
