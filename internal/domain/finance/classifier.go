package finance

import (
	"github.com/reelworks/backend/internal/domain/identity"
	"github.com/reelworks/backend/internal/domain/production"
	"github.com/shopspring/decimal"
)

// ScopeMode selects which granularity a summary is computed at: project fee
// records or invoice records. Both call sites exist in the product (the
// dashboard sums project fees, the invoice screens sum invoices).
type ScopeMode string

const (
	ScopeProjects ScopeMode = "projects"
	ScopeInvoices ScopeMode = "invoices"
)

// IsValid checks if the mode is a known scope mode.
func (m ScopeMode) IsValid() bool {
	return m == ScopeProjects || m == ScopeInvoices
}

// SummaryType tags which interpretation of the books a summary represents.
type SummaryType string

const (
	SummaryTypeRevenue SummaryType = "revenue"
	SummaryTypeExpense SummaryType = "expense"
	SummaryTypeAgency  SummaryType = "agency"
	SummaryTypeDefault SummaryType = "default"
)

// Summary is the role-specific financial view rendered on the dashboard.
// The same invoice and project snapshot produces mutually exclusive
// interpretations depending on the acting role: an editor reads it as
// revenue, a client as expense, an agency as both sides plus margin.
type Summary struct {
	TotalLabel         string          `json:"total_label"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	TotalDescription   string          `json:"total_description"`
	PaidLabel          string          `json:"paid_label"`
	PaidAmount         decimal.Decimal `json:"paid_amount"`
	PaidDescription    string          `json:"paid_description"`
	PendingLabel       string          `json:"pending_label"`
	PendingAmount      decimal.Decimal `json:"pending_amount"`
	PendingDescription string          `json:"pending_description"`

	// PartialAmount tracks money still in motion on partially paid
	// invoices. It is deliberately not folded into paid or pending.
	PartialAmount decimal.Decimal `json:"partial_amount"`

	Type SummaryType `json:"type"`

	// Agency-only figures.
	Expense *decimal.Decimal `json:"expense,omitempty"`
	Margin  *decimal.Decimal `json:"margin,omitempty"`
}

// Classify produces the role-specific summary over the given snapshot.
// currentUserID scopes the editor and client branches; the agency branch is
// presumed to own the whole book and is never scoped.
func Classify(role identity.Role, invoices []Invoice, projects []production.Project, currentUserID string, mode ScopeMode) Summary {
	switch role {
	case identity.RoleEditor:
		return classifyEditor(invoices, projects, currentUserID, mode)
	case identity.RoleClient:
		return classifyClient(invoices, projects, currentUserID, mode)
	case identity.RoleAgency:
		return classifyAgency(invoices, projects, mode)
	default:
		return classifyDefault(invoices, projects, mode)
	}
}

func classifyEditor(invoices []Invoice, projects []production.Project, userID string, mode ScopeMode) Summary {
	scoped := filterInvoices(invoices, func(inv Invoice) bool { return inv.EditorID == userID })

	var total decimal.Decimal
	if mode == ScopeProjects {
		total = sumProjects(projects, production.Project.EditorRate)
	} else {
		total = sumInvoices(scoped, func(inv Invoice) decimal.Decimal { return inv.TotalAmount })
	}

	s := statusAmounts(scoped)
	s.TotalLabel = "Total Earnings"
	s.TotalAmount = total
	s.TotalDescription = "Your editing fees across all assigned work"
	s.PaidLabel = "Received"
	s.PaidDescription = "Payments already settled to you"
	s.PendingLabel = "Awaiting Payment"
	s.PendingDescription = "Invoiced amounts not yet paid out"
	s.Type = SummaryTypeRevenue
	return s
}

func classifyClient(invoices []Invoice, projects []production.Project, userID string, mode ScopeMode) Summary {
	scoped := filterInvoices(invoices, func(inv Invoice) bool { return inv.ClientID == userID })

	var total decimal.Decimal
	if mode == ScopeProjects {
		total = sumProjects(projects, production.Project.ClientRate)
	} else {
		total = sumInvoices(scoped, func(inv Invoice) decimal.Decimal { return inv.TotalAmount })
	}

	s := statusAmounts(scoped)
	s.TotalLabel = "Total Spend"
	s.TotalAmount = total
	s.TotalDescription = "Production costs across your projects"
	s.PaidLabel = "Paid"
	s.PaidDescription = "Invoices you have settled"
	s.PendingLabel = "Outstanding"
	s.PendingDescription = "Invoices awaiting your payment"
	s.Type = SummaryTypeExpense
	return s
}

func classifyAgency(invoices []Invoice, projects []production.Project, mode ScopeMode) Summary {
	var revenue, expense decimal.Decimal
	if mode == ScopeProjects {
		revenue = sumProjects(projects, production.Project.ClientRate)
		expense = sumProjects(projects, production.Project.EditorRate)
	} else {
		revenue = sumInvoices(invoices, func(inv Invoice) decimal.Decimal { return inv.TotalAmount })
		editorPayments := filterInvoices(invoices, func(inv Invoice) bool { return inv.PaymentType == PaymentTypeEditor })
		expense = sumInvoices(editorPayments, func(inv Invoice) decimal.Decimal { return inv.TotalAmount })
	}
	margin := revenue.Sub(expense)

	s := statusAmounts(invoices)
	s.TotalLabel = "Client Revenue"
	s.TotalAmount = revenue
	s.TotalDescription = "Billed to clients across the whole book"
	s.PaidLabel = "Collected"
	s.PaidDescription = "Client payments received"
	s.PendingLabel = "Receivable"
	s.PendingDescription = "Billed but not yet collected"
	s.Type = SummaryTypeAgency
	s.Expense = &expense
	s.Margin = &margin
	return s
}

func classifyDefault(invoices []Invoice, projects []production.Project, mode ScopeMode) Summary {
	var total decimal.Decimal
	if mode == ScopeProjects {
		total = sumProjects(projects, production.Project.ClientRate)
	} else {
		total = sumInvoices(invoices, func(inv Invoice) decimal.Decimal { return inv.TotalAmount })
	}

	s := statusAmounts(invoices)
	s.TotalLabel = "Total Invoiced"
	s.TotalAmount = total
	s.TotalDescription = "All invoiced amounts"
	s.PaidLabel = "Total Paid"
	s.PaidDescription = "All settled amounts"
	s.PendingLabel = "Pending"
	s.PendingDescription = "All unsettled amounts"
	s.Type = SummaryTypeDefault
	return s
}

// statusAmounts computes the paid, pending and partial amounts over one
// scoped invoice collection: paid sums paid_amount of paid invoices, pending
// sums remaining_amount of pending invoices, and partial tracks
// remaining_amount of partially paid invoices separately.
func statusAmounts(scoped []Invoice) Summary {
	s := Summary{
		TotalAmount:   decimal.Zero,
		PaidAmount:    decimal.Zero,
		PendingAmount: decimal.Zero,
		PartialAmount: decimal.Zero,
	}
	for _, inv := range scoped {
		switch inv.Status {
		case InvoiceStatusPaid:
			s.PaidAmount = s.PaidAmount.Add(inv.PaidAmount)
		case InvoiceStatusPending:
			s.PendingAmount = s.PendingAmount.Add(inv.RemainingAmount)
		case InvoiceStatusPartial:
			s.PartialAmount = s.PartialAmount.Add(inv.RemainingAmount)
		}
	}
	return s
}

func filterInvoices(invoices []Invoice, keep func(Invoice) bool) []Invoice {
	out := make([]Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if keep(inv) {
			out = append(out, inv)
		}
	}
	return out
}

func sumInvoices(invoices []Invoice, value func(Invoice) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range invoices {
		total = total.Add(value(inv))
	}
	return total
}

func sumProjects(projects []production.Project, value func(production.Project) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, p := range projects {
		total = total.Add(value(p))
	}
	return total
}
