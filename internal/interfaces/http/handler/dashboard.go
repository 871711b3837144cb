package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/reelworks/backend/internal/application/dashboard"
	"github.com/reelworks/backend/internal/domain/finance"
	"github.com/reelworks/backend/internal/domain/shared"
	applogger "github.com/reelworks/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// DashboardHandler exposes the role-specific financial summary, the monthly
// breakdown report, and the snapshot refresh trigger.
type DashboardHandler struct {
	BaseHandler
	service *dashboard.Service
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(service *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// SummaryRequest selects the aggregation granularity for the summary.
type SummaryRequest struct {
	Mode string `form:"mode" binding:"omitempty,oneof=projects invoices"`
}

// SummaryResponse is the role-specific financial summary, formatted for
// display. Amounts are plain numbers; currency formatting happens client
// side.
type SummaryResponse struct {
	TotalLabel         string   `json:"total_label"`
	TotalAmount        float64  `json:"total_amount"`
	TotalDescription   string   `json:"total_description"`
	PaidLabel          string   `json:"paid_label"`
	PaidAmount         float64  `json:"paid_amount"`
	PaidDescription    string   `json:"paid_description"`
	PendingLabel       string   `json:"pending_label"`
	PendingAmount      float64  `json:"pending_amount"`
	PendingDescription string   `json:"pending_description"`
	PartialAmount      float64  `json:"partial_amount"`
	Type               string   `json:"type"`
	Expense            *float64 `json:"expense,omitempty"`
	Margin             *float64 `json:"margin,omitempty"`
}

func toSummaryResponse(s finance.Summary) SummaryResponse {
	resp := SummaryResponse{
		TotalLabel:         s.TotalLabel,
		TotalAmount:        s.TotalAmount.InexactFloat64(),
		TotalDescription:   s.TotalDescription,
		PaidLabel:          s.PaidLabel,
		PaidAmount:         s.PaidAmount.InexactFloat64(),
		PaidDescription:    s.PaidDescription,
		PendingLabel:       s.PendingLabel,
		PendingAmount:      s.PendingAmount.InexactFloat64(),
		PendingDescription: s.PendingDescription,
		PartialAmount:      s.PartialAmount.InexactFloat64(),
		Type:               string(s.Type),
	}
	if s.Expense != nil {
		v := s.Expense.InexactFloat64()
		resp.Expense = &v
	}
	if s.Margin != nil {
		v := s.Margin.InexactFloat64()
		resp.Margin = &v
	}
	return resp
}

// GetSummary returns the role-specific financial summary.
// GET /api/v1/dashboard/summary
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	var req SummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	mode := finance.ScopeMode(req.Mode)
	if !mode.IsValid() {
		mode = finance.ScopeProjects
	}

	summary, err := h.service.FinancialSummary(mode)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toSummaryResponse(summary))
}

// MonthBucketResponse is one month of the breakdown report.
type MonthBucketResponse struct {
	Month        string  `json:"month"`
	ProjectCount int     `json:"project_count"`
	Total        float64 `json:"total"`
	Paid         float64 `json:"paid"`
	Pending      float64 `json:"pending"`
}

func toMonthBucketResponses(buckets []finance.MonthBucket) []MonthBucketResponse {
	out := make([]MonthBucketResponse, len(buckets))
	for i, b := range buckets {
		out[i] = MonthBucketResponse{
			Month:        b.Month,
			ProjectCount: b.ProjectCount,
			Total:        b.Total.InexactFloat64(),
			Paid:         b.Paid.InexactFloat64(),
			Pending:      b.Pending.InexactFloat64(),
		}
	}
	return out
}

// GetMonthlyReport returns the per-month invoice-item breakdown. When no
// snapshot is loaded yet and a user_id is given, the last persisted
// breakdown for that user is served instead.
// GET /api/v1/reports/monthly
func (h *DashboardHandler) GetMonthlyReport(c *gin.Context) {
	buckets, err := h.service.MonthlyBreakdown(c.Request.Context())
	if err != nil {
		if userID := c.Query("user_id"); userID != "" && errors.Is(err, shared.ErrSnapshotMissing) {
			cached, cacheErr := h.service.CachedBreakdown(c.Request.Context(), userID)
			if cacheErr == nil && len(cached) > 0 {
				h.Success(c, toMonthBucketResponses(cached))
				return
			}
		}
		h.HandleError(c, err)
		return
	}
	h.Success(c, toMonthBucketResponses(buckets))
}

// RefreshSnapshot triggers a refetch of all remote collections.
// POST /api/v1/snapshot/refresh
func (h *DashboardHandler) RefreshSnapshot(c *gin.Context) {
	if err := h.service.RefreshSnapshot(c.Request.Context()); err != nil {
		applogger.GetGinLogger(c).Error("snapshot refresh failed", zap.Error(err))
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"refreshed": true})
}

// GetProfile returns the current user's profile from the snapshot.
// GET /api/v1/profile
func (h *DashboardHandler) GetProfile(c *gin.Context) {
	profile, err := h.service.Profile()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}
