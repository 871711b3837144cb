package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/reelworks/backend/internal/application/dashboard"
	"github.com/reelworks/backend/internal/domain/finance"
)

// InvoiceHandler exposes the invoice list and the filtered totals.
type InvoiceHandler struct {
	BaseHandler
	service *dashboard.Service
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(service *dashboard.Service) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

// ListInvoicesRequest carries the invoice list controls. Empty values and
// the sentinel "all" disable the corresponding filter.
type ListInvoicesRequest struct {
	Search   string `form:"search"`
	Status   string `form:"status"`
	EditorID string `form:"editor_id"`
	Month    string `form:"month"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=total_amount remaining_amount due_date month created_at"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=asc desc"`
}

// InvoiceResponse is one invoice row, with money rendered as plain numbers.
type InvoiceResponse struct {
	ID              string  `json:"id"`
	EditorID        string  `json:"editor_id"`
	ClientID        string  `json:"client_id"`
	Month           string  `json:"month"`
	TotalAmount     float64 `json:"total_amount"`
	TotalDeductions float64 `json:"total_deductions"`
	PaidAmount      float64 `json:"paid_amount"`
	RemainingAmount float64 `json:"remaining_amount"`
	Status          string  `json:"status"`
	PaymentType     string  `json:"payment_type,omitempty"`
	CreatedAt       string  `json:"created_at,omitempty"`
	DueDate         string  `json:"due_date,omitempty"`
	Notes           string  `json:"notes,omitempty"`
}

func toInvoiceResponse(inv finance.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:              inv.ID,
		EditorID:        inv.EditorID,
		ClientID:        inv.ClientID,
		Month:           inv.Month,
		TotalAmount:     inv.TotalAmount.InexactFloat64(),
		TotalDeductions: inv.TotalDeductions.InexactFloat64(),
		PaidAmount:      inv.PaidAmount.InexactFloat64(),
		RemainingAmount: inv.RemainingAmount.InexactFloat64(),
		Status:          inv.Status.String(),
		PaymentType:     inv.PaymentType,
		CreatedAt:       formatTime(inv.CreatedAt),
		DueDate:         formatTime(inv.DueDate),
		Notes:           inv.Notes,
	}
}

// List returns the filtered, sorted invoice list.
// GET /api/v1/invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	var req ListInvoicesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoices, err := h.service.Invoices(dashboard.InvoiceQuery{
		ListQuery: dashboard.ListQuery{
			Search:  req.Search,
			Status:  req.Status,
			SortBy:  req.SortBy,
			OrderBy: req.OrderBy,
		},
		EditorID: req.EditorID,
		Month:    req.Month,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	total := len(invoices)
	if total > maxListRows {
		invoices = invoices[:maxListRows]
	}
	rows := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		rows[i] = toInvoiceResponse(inv)
	}
	h.ListResponse(c, rows, total)
}

// GetTotalsRequest selects the totals filter and the empty-match behavior.
// fallback=unfiltered re-aggregates over the whole book when the filter
// matches nothing.
type GetTotalsRequest struct {
	EditorID string `form:"editor_id"`
	Month    string `form:"month"`
	Fallback string `form:"fallback" binding:"omitempty,oneof=none unfiltered"`
}

// TotalsResponse is the aggregated invoice totals for a filter.
type TotalsResponse struct {
	TotalAmount     float64 `json:"total_amount"`
	TotalDeductions float64 `json:"total_deductions"`
	TotalPaid       float64 `json:"total_paid"`
	TotalPending    float64 `json:"total_pending"`
	MatchCount      int     `json:"match_count"`
	FellBack        bool    `json:"fell_back"`
}

// GetTotals returns the aggregated totals for the filtered invoice set.
// GET /api/v1/invoices/totals
func (h *InvoiceHandler) GetTotals(c *gin.Context) {
	var req GetTotalsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	policy := dashboard.FallbackNone
	if req.Fallback == string(dashboard.FallbackUnfiltered) {
		policy = dashboard.FallbackUnfiltered
	}

	totals, fellBack, err := h.service.InvoiceTotals(finance.InvoiceFilter{
		EditorID: req.EditorID,
		Month:    req.Month,
	}, policy)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, TotalsResponse{
		TotalAmount:     totals.TotalAmount.InexactFloat64(),
		TotalDeductions: totals.TotalDeductions.InexactFloat64(),
		TotalPaid:       totals.TotalPaid.InexactFloat64(),
		TotalPending:    totals.TotalPending.InexactFloat64(),
		MatchCount:      totals.MatchCount,
		FellBack:        fellBack,
	})
}
