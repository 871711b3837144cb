package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/reelworks/backend/internal/application/dashboard"
	"github.com/reelworks/backend/internal/infrastructure/config"
	"github.com/reelworks/backend/internal/infrastructure/logger"
	"github.com/reelworks/backend/internal/infrastructure/persistence"
	"github.com/reelworks/backend/internal/infrastructure/workflowapi"
	"github.com/reelworks/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.Open(cfg.Cache.Path, log, cfg.Log.Level)
	if err != nil {
		log.Fatal("failed to open summary cache", zap.Error(err))
	}
	cache := persistence.NewBreakdownCacheRepository(db)

	client := workflowapi.NewClient(cfg.WorkflowAPI)
	service := dashboard.NewService(client, cache, log)

	// Warm the snapshot so the first request does not hit an empty service.
	// Failure is not fatal; a later refresh can succeed.
	warmCtx, cancel := context.WithTimeout(context.Background(), cfg.WorkflowAPI.Timeout*2)
	if err := service.RefreshSnapshot(warmCtx); err != nil {
		log.Warn("initial snapshot refresh failed", zap.Error(err))
	}
	cancel()

	engine := router.New(cfg, log, service)
	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
