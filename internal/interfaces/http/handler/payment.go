package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/reelworks/backend/internal/application/dashboard"
	"github.com/reelworks/backend/internal/domain/finance"
)

// PaymentHandler exposes the billing-history payment list.
type PaymentHandler struct {
	BaseHandler
	service *dashboard.Service
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(service *dashboard.Service) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// ListPaymentsRequest carries the payment list controls.
type ListPaymentsRequest struct {
	Search  string `form:"search"`
	Status  string `form:"status"`
	SortBy  string `form:"sort_by" binding:"omitempty,oneof=amount date"`
	OrderBy string `form:"order_by" binding:"omitempty,oneof=asc desc"`
}

// PaymentResponse is one payment row.
type PaymentResponse struct {
	ID          string  `json:"id"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Status      string  `json:"status"`
	Date        string  `json:"date,omitempty"`
	Description string  `json:"description,omitempty"`
	Method      string  `json:"payment_method,omitempty"`
}

func toPaymentResponse(p finance.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		Amount:      p.Amount.InexactFloat64(),
		Currency:    p.Currency,
		Status:      p.Status.String(),
		Date:        formatTime(p.Date),
		Description: p.Description,
		Method:      p.Method,
	}
}

// List returns the filtered, sorted payment list.
// GET /api/v1/payments
func (h *PaymentHandler) List(c *gin.Context) {
	var req ListPaymentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payments, err := h.service.Payments(dashboard.ListQuery{
		Search:  req.Search,
		Status:  req.Status,
		SortBy:  req.SortBy,
		OrderBy: req.OrderBy,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	total := len(payments)
	if total > maxListRows {
		payments = payments[:maxListRows]
	}
	rows := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		rows[i] = toPaymentResponse(p)
	}
	h.ListResponse(c, rows, total)
}
