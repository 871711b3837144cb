package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyBreakdown(t *testing.T) {
	t.Run("groups items by invoice month and reconciles paid amounts", func(t *testing.T) {
		items := []InvoiceItem{
			{ID: "IT-1", InvoiceMonth: "Jan 2025", Amount: decimal.NewFromInt(100)},
			{ID: "IT-2", InvoiceMonth: "Jan 2025", Amount: decimal.NewFromInt(200)},
			{ID: "IT-3", InvoiceMonth: "Feb 2025", Amount: decimal.NewFromInt(50)},
		}
		invoices := []Invoice{
			{ID: "INV-1", Month: "Jan 2025", PaidAmount: decimal.NewFromInt(150), Status: InvoiceStatusPaid},
		}

		got := MonthlyBreakdown(items, invoices)

		require.Len(t, got, 2)
		byMonth := map[string]MonthBucket{}
		for _, b := range got {
			byMonth[b.Month] = b
		}

		jan := byMonth["Jan 2025"]
		assert.Equal(t, 2, jan.ProjectCount)
		assert.True(t, decimal.NewFromInt(300).Equal(jan.Total))
		assert.True(t, decimal.NewFromInt(150).Equal(jan.Paid))
		assert.True(t, decimal.NewFromInt(150).Equal(jan.Pending))

		feb := byMonth["Feb 2025"]
		assert.Equal(t, 1, feb.ProjectCount)
		assert.True(t, decimal.NewFromInt(50).Equal(feb.Total))
		assert.True(t, feb.Paid.IsZero())
		assert.True(t, decimal.NewFromInt(50).Equal(feb.Pending))
	})

	t.Run("orders months lexicographically descending", func(t *testing.T) {
		items := []InvoiceItem{
			{ID: "IT-1", InvoiceMonth: "2025-01", Amount: decimal.NewFromInt(10)},
			{ID: "IT-2", InvoiceMonth: "2025-03", Amount: decimal.NewFromInt(10)},
			{ID: "IT-3", InvoiceMonth: "2025-02", Amount: decimal.NewFromInt(10)},
		}

		got := MonthlyBreakdown(items, nil)

		require.Len(t, got, 3)
		assert.Equal(t, "2025-03", got[0].Month)
		assert.Equal(t, "2025-02", got[1].Month)
		assert.Equal(t, "2025-01", got[2].Month)
	})

	t.Run("negative pending is surfaced, not clamped", func(t *testing.T) {
		items := []InvoiceItem{
			{ID: "IT-1", InvoiceMonth: "Jan 2025", Amount: decimal.NewFromInt(100)},
		}
		invoices := []Invoice{
			{ID: "INV-1", Month: "Jan 2025", PaidAmount: decimal.NewFromInt(250), Status: InvoiceStatusPaid},
		}

		got := MonthlyBreakdown(items, invoices)

		require.Len(t, got, 1)
		assert.True(t, decimal.NewFromInt(-150).Equal(got[0].Pending))
	})

	t.Run("unpaid invoices contribute nothing to paid", func(t *testing.T) {
		items := []InvoiceItem{
			{ID: "IT-1", InvoiceMonth: "Jan 2025", Amount: decimal.NewFromInt(100)},
		}
		invoices := []Invoice{
			{ID: "INV-1", Month: "Jan 2025", PaidAmount: decimal.NewFromInt(60), Status: InvoiceStatusPartial},
		}

		got := MonthlyBreakdown(items, invoices)

		require.Len(t, got, 1)
		assert.True(t, got[0].Paid.IsZero())
		assert.True(t, decimal.NewFromInt(100).Equal(got[0].Pending))
	})

	t.Run("items without a resolved month are skipped", func(t *testing.T) {
		items := []InvoiceItem{
			{ID: "IT-1", Amount: decimal.NewFromInt(100)},
		}
		assert.Empty(t, MonthlyBreakdown(items, nil))
	})
}

func TestEnrichItemsWithMonth(t *testing.T) {
	items := []InvoiceItem{
		{ID: "IT-1", InvoiceID: "INV-1"},
		{ID: "IT-2", InvoiceID: "INV-404"},
	}
	invoices := []Invoice{
		{ID: "INV-1", Month: "March 2025"},
	}

	got := EnrichItemsWithMonth(items, invoices)

	require.Len(t, got, 2)
	assert.Equal(t, "March 2025", got[0].InvoiceMonth)
	assert.Empty(t, got[1].InvoiceMonth)
	// Original slice untouched.
	assert.Empty(t, items[0].InvoiceMonth)
}
