package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the settlement state of a payment.
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// IsValid checks if the status is a known payment status.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusCompleted, PaymentStatusPending, PaymentStatusFailed:
		return true
	}
	return false
}

// String returns the string representation
func (s PaymentStatus) String() string {
	return string(s)
}

// Payment is one billing-history payment record.
type Payment struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Status      PaymentStatus   `json:"status"`
	Date        *time.Time      `json:"date"`
	Description string          `json:"description,omitempty"`
	Method      string          `json:"payment_method,omitempty"`

	Warnings []string `json:"-"`
}
