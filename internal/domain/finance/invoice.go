// Package finance is the financial read-model of the workflow domain:
// typed invoice, line-item and payment records normalized from raw API
// payloads, plus the pure aggregation, classification and monthly-breakdown
// computations that every money-facing screen is built on.
package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

// consistencyTolerance is the rounding slack allowed when checking that an
// invoice's amounts reconcile.
var consistencyTolerance = decimal.NewFromFloat(0.01)

// InvoiceStatus represents the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft      InvoiceStatus = "draft"
	InvoiceStatusPending    InvoiceStatus = "pending"
	InvoiceStatusInProgress InvoiceStatus = "in_progress"
	InvoiceStatusPartial    InvoiceStatus = "partial"
	InvoiceStatusPaid       InvoiceStatus = "paid"
)

// IsValid checks if the status is a known invoice status.
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusPending, InvoiceStatusInProgress,
		InvoiceStatusPartial, InvoiceStatusPaid:
		return true
	}
	return false
}

// String returns the string representation
func (s InvoiceStatus) String() string {
	return string(s)
}

// PaymentTypeEditor marks invoices that pay an editor rather than bill a
// client; agency expense aggregation keys on it.
const PaymentTypeEditor = "editor_payment"

// Invoice is one invoice record. Month is a free-text label such as
// "January 2025" assigned by the remote system; it is treated as opaque.
type Invoice struct {
	ID              string          `json:"id"`
	EditorID        string          `json:"editor_id"`
	ClientID        string          `json:"client_id"`
	Month           string          `json:"month"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	Status          InvoiceStatus   `json:"status"`
	PaymentType     string          `json:"payment_type,omitempty"`
	CreatedAt       *time.Time      `json:"created_at"`
	DueDate         *time.Time      `json:"due_date"`
	Notes           string          `json:"notes,omitempty"`

	// Warnings lists field names whose values were present but not
	// interpretable during normalization.
	Warnings []string `json:"-"`
}

// ConsistencyGap returns total - deductions - paid - remaining. A
// well-formed invoice keeps this within rounding tolerance of zero.
func (i Invoice) ConsistencyGap() decimal.Decimal {
	return i.TotalAmount.
		Sub(i.TotalDeductions).
		Sub(i.PaidAmount).
		Sub(i.RemainingAmount)
}

// IsConsistent reports whether the invoice amounts reconcile within the
// rounding tolerance.
func (i Invoice) IsConsistent() bool {
	return i.ConsistencyGap().Abs().LessThanOrEqual(consistencyTolerance)
}

// InvoiceItem is one line item of an invoice. ItemName is a display label,
// typically a project name. InvoiceMonth is copied from the parent invoice
// when line items are joined to their invoices, so the monthly breakdown can
// group items without re-resolving parents.
type InvoiceItem struct {
	ID           string          `json:"id"`
	InvoiceID    string          `json:"invoice_id"`
	ItemName     string          `json:"item_name"`
	Amount       decimal.Decimal `json:"amount"`
	InvoiceMonth string          `json:"invoice_month,omitempty"`

	Warnings []string `json:"-"`
}
