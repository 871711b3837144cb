package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/reelworks/backend/internal/application/dashboard"
	"github.com/reelworks/backend/internal/domain/shared/rawrecord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubFetcher struct {
	invoices []rawrecord.Record
	items    map[string][]rawrecord.Record
	projects []rawrecord.Record
	shared   []rawrecord.Record
	payments []rawrecord.Record
	profile  rawrecord.Record
}

func (f *stubFetcher) ListInvoices(ctx context.Context) ([]rawrecord.Record, error) {
	return f.invoices, nil
}

func (f *stubFetcher) ListInvoiceItems(ctx context.Context, invoiceID string) ([]rawrecord.Record, error) {
	return f.items[invoiceID], nil
}

func (f *stubFetcher) ListProjects(ctx context.Context) ([]rawrecord.Record, error) {
	return f.projects, nil
}

func (f *stubFetcher) ListSharedProjects(ctx context.Context) ([]rawrecord.Record, error) {
	return f.shared, nil
}

func (f *stubFetcher) ListPayments(ctx context.Context) ([]rawrecord.Record, error) {
	return f.payments, nil
}

func (f *stubFetcher) GetProfile(ctx context.Context) (rawrecord.Record, error) {
	return f.profile, nil
}

func newTestEngine(t *testing.T, refresh bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fetcher := &stubFetcher{
		profile: rawrecord.Record{"user_id": "u-editor", "user_category": "editor"},
		invoices: []rawrecord.Record{
			{
				"id": "inv-1", "editor_id": "u-editor", "month": "January 2025",
				"total_amount": 1000.0, "paid_amount": 400.0, "remaining_amount": 600.0,
				"status": "partial",
			},
		},
		items: map[string][]rawrecord.Record{
			"inv-1": {{"id": "it-1", "invoice_id": "inv-1", "item_name": "Edit A", "amount": 250.0}},
		},
		projects: []rawrecord.Record{
			{"id": "p-1", "name": "Launch Teaser", "editor_fee": 800.0, "status": "in_progress"},
		},
		payments: []rawrecord.Record{
			{"id": "pay-1", "amount": 50.0, "status": "completed", "date": "2025-01-10"},
		},
	}

	service := dashboard.NewService(fetcher, nil, zap.NewNop())
	if refresh {
		require.NoError(t, service.RefreshSnapshot(context.Background()))
	}

	engine := gin.New()
	dashboardHandler := NewDashboardHandler(service)
	invoiceHandler := NewInvoiceHandler(service)
	projectHandler := NewProjectHandler(service)
	paymentHandler := NewPaymentHandler(service)

	v1 := engine.Group("/api/v1")
	v1.POST("/snapshot/refresh", dashboardHandler.RefreshSnapshot)
	v1.GET("/dashboard/summary", dashboardHandler.GetSummary)
	v1.GET("/reports/monthly", dashboardHandler.GetMonthlyReport)
	v1.GET("/invoices", invoiceHandler.List)
	v1.GET("/invoices/totals", invoiceHandler.GetTotals)
	v1.GET("/projects", projectHandler.List)
	v1.GET("/payments", paymentHandler.List)
	return engine
}

func doRequest(engine *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	engine.ServeHTTP(w, req)
	return w
}

func TestGetSummaryBeforeRefresh(t *testing.T) {
	engine := newTestEngine(t, false)

	w := doRequest(engine, http.MethodGet, "/api/v1/dashboard/summary")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "ERR_SNAPSHOT_MISSING", body.Error.Code)
}

func TestGetSummary(t *testing.T) {
	engine := newTestEngine(t, true)

	w := doRequest(engine, http.MethodGet, "/api/v1/dashboard/summary?mode=projects")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool            `json:"success"`
		Data    SummaryResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Total Earnings", body.Data.TotalLabel)
	assert.InDelta(t, 800.0, body.Data.TotalAmount, 0.001)
	assert.InDelta(t, 600.0, body.Data.PartialAmount, 0.001)
	assert.Nil(t, body.Data.Margin)
}

func TestGetSummaryRejectsUnknownMode(t *testing.T) {
	engine := newTestEngine(t, true)

	w := doRequest(engine, http.MethodGet, "/api/v1/dashboard/summary?mode=weekly")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefreshSnapshotEndpoint(t *testing.T) {
	engine := newTestEngine(t, false)

	w := doRequest(engine, http.MethodPost, "/api/v1/snapshot/refresh")
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(engine, http.MethodGet, "/api/v1/dashboard/summary")
	assert.Equal(t, http.StatusOK, w.Code, "summary must be served once a snapshot is installed")
}

func TestListInvoices(t *testing.T) {
	engine := newTestEngine(t, true)

	w := doRequest(engine, http.MethodGet, "/api/v1/invoices?editor_id=u-editor")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []InvoiceResponse `json:"data"`
		Meta struct {
			Total     int  `json:"total"`
			Truncated bool `json:"truncated"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "inv-1", body.Data[0].ID)
	assert.Equal(t, 1, body.Meta.Total)
	assert.False(t, body.Meta.Truncated)
}

func TestGetTotalsFallback(t *testing.T) {
	engine := newTestEngine(t, true)

	w := doRequest(engine, http.MethodGet, "/api/v1/invoices/totals?editor_id=u-nobody&fallback=unfiltered")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data TotalsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Data.FellBack)
	assert.InDelta(t, 1000.0, body.Data.TotalAmount, 0.001)

	w = doRequest(engine, http.MethodGet, "/api/v1/invoices/totals?editor_id=u-nobody")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Data.FellBack)
	assert.Zero(t, body.Data.MatchCount)
}

func TestListProjects(t *testing.T) {
	engine := newTestEngine(t, true)

	w := doRequest(engine, http.MethodGet, "/api/v1/projects")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []ProjectResponse `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "p-1", body.Data[0].ID)
	assert.InDelta(t, 800.0, body.Data[0].EditorFee, 0.001)
	assert.Equal(t, 1, body.Meta.Total)
}

func TestListPayments(t *testing.T) {
	engine := newTestEngine(t, true)

	w := doRequest(engine, http.MethodGet, "/api/v1/payments")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []PaymentResponse `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "pay-1", body.Data[0].ID)
	assert.Equal(t, 1, body.Meta.Total)
}

func TestGetMonthlyReport(t *testing.T) {
	engine := newTestEngine(t, true)

	w := doRequest(engine, http.MethodGet, "/api/v1/reports/monthly")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []MonthBucketResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "January 2025", body.Data[0].Month)
	assert.InDelta(t, 250.0, body.Data[0].Total, 0.001)
}
