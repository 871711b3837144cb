// Package router wires the HTTP routes to their handlers.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/reelworks/backend/internal/application/dashboard"
	"github.com/reelworks/backend/internal/infrastructure/config"
	"github.com/reelworks/backend/internal/infrastructure/logger"
	"github.com/reelworks/backend/internal/interfaces/http/handler"
	"go.uber.org/zap"
)

// New builds the gin engine with middleware and all routes registered.
func New(cfg *config.Config, log *zap.Logger, service *dashboard.Service) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		logger.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
	)

	systemHandler := handler.NewSystemHandler(cfg.App.Name)
	dashboardHandler := handler.NewDashboardHandler(service)
	invoiceHandler := handler.NewInvoiceHandler(service)
	projectHandler := handler.NewProjectHandler(service)
	paymentHandler := handler.NewPaymentHandler(service)

	engine.GET("/health", systemHandler.Health)

	v1 := engine.Group("/api/v1")
	{
		v1.POST("/snapshot/refresh", dashboardHandler.RefreshSnapshot)
		v1.GET("/profile", dashboardHandler.GetProfile)
		v1.GET("/dashboard/summary", dashboardHandler.GetSummary)
		v1.GET("/reports/monthly", dashboardHandler.GetMonthlyReport)

		v1.GET("/invoices", invoiceHandler.List)
		v1.GET("/invoices/totals", invoiceHandler.GetTotals)

		v1.GET("/projects", projectHandler.List)
		v1.GET("/payments", paymentHandler.List)
	}

	return engine
}
