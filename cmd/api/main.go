package main

import (
	"os"
	"os/signal"
	"syscall"

	"go-stock-ledger/internal/config"
	"go-stock-ledger/internal/handler"
	"go-stock-ledger/internal/metrics"
	"go-stock-ledger/internal/repository"
	"go-stock-ledger/internal/router"
	"go-stock-ledger/internal/service"
	"go-stock-ledger/internal/ws"
	"go-stock-ledger/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// 1. Load Config
	cfg, err := config.Load(os.Getenv("ENV_FILE"))
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.File))
	defer func() { _ = baseLogger.Sync() }()
	zap.ReplaceGlobals(baseLogger)

	// 2. Setup Storage
	stockRepo := repository.NewStockRepo(cfg.Storage.InventoryFile, logger.Named(baseLogger, "repo.stock"))
	historyRepo := repository.NewHistoryRepo(cfg.Storage.HistoryFile, cfg.Storage.Retention, logger.Named(baseLogger, "repo.history"))

	// Creates header-only files on first run. Failures here are retried by
	// every request, so the server still starts.
	records, err := stockRepo.FindAll()
	if err != nil {
		baseLogger.Error("failed to load inventory", zap.String("path", cfg.Storage.InventoryFile), zap.Error(err))
	}
	if _, err := historyRepo.FindAll(); err != nil {
		baseLogger.Error("failed to load history", zap.String("path", cfg.Storage.HistoryFile), zap.Error(err))
	}
	metrics.SetRecordCount(len(records))
	baseLogger.Info("storage ready",
		zap.String("inventory", cfg.Storage.InventoryFile),
		zap.String("history", cfg.Storage.HistoryFile),
		zap.Int("records", len(records)))

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub(logger.Named(baseLogger, "ws"))
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	invService := service.NewInventoryService(stockRepo, historyRepo, wsHub, logger.Named(baseLogger, "svc.inventory"))
	dashService := service.NewDashboardService(stockRepo, historyRepo, cfg.Stock.LowStockThreshold)
	exportService := service.NewExportService(stockRepo, historyRepo)

	app := router.New(router.Handlers{
		Inventory: handler.NewInventoryHandler(invService),
		Dashboard: handler.NewDashboardHandler(dashService),
		Export:    handler.NewExportHandler(exportService),
	}, wsHub, router.Options{
		AppName:            "Stock Ledger v1.0",
		JWTSecret:          cfg.Auth.Secret,
		RateLimitPerMinute: cfg.Server.RateLimitPerMinute,
		RequestLogging:     true,
	}, logger.Named(baseLogger, "router"))

	if cfg.Auth.Secret == "" {
		baseLogger.Warn("JWT_SECRET not set, mutating routes are open")
	}

	// 5. Graceful Shutdown
	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	baseLogger.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		baseLogger.Error("server forced to shutdown", zap.Error(err))
	}

	baseLogger.Info("server exited")
}
