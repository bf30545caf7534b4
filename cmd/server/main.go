package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/thuanlv/eelfarm/internal/config"
	"github.com/thuanlv/eelfarm/internal/domain/models"
	"github.com/thuanlv/eelfarm/internal/repository/mongodb"
	"github.com/thuanlv/eelfarm/internal/repository/sheets"
	"github.com/thuanlv/eelfarm/internal/scheduler"
	"github.com/thuanlv/eelfarm/internal/server/handlers"
	"github.com/thuanlv/eelfarm/internal/server/router"
	financesvc "github.com/thuanlv/eelfarm/internal/service/finance"
	husbandrysvc "github.com/thuanlv/eelfarm/internal/service/husbandry"
	inventorysvc "github.com/thuanlv/eelfarm/internal/service/inventory"
	reportingsvc "github.com/thuanlv/eelfarm/internal/service/reporting"
	"github.com/thuanlv/eelfarm/pkg/clients/notify"
	"github.com/thuanlv/eelfarm/pkg/keylock"
	"github.com/thuanlv/eelfarm/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, err := mongodb.NewStore(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	var exporter sheets.Exporter
	if cfg.Sheets.Enabled() {
		sheetExporter, err := sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		exporter = sheetExporter
		baseLogger.Info("sheets report export enabled")
	} else {
		baseLogger.Warn("sheets credentials missing, report export disabled")
	}

	// One lock table shared by every service that mutates tanks or stock.
	locks := keylock.New()

	inventorySvc := inventorysvc.NewService(store, locks, baseLogger.Named("svc.inventory"))
	husbandrySvc := husbandrysvc.NewService(store, locks, baseLogger.Named("svc.husbandry"))
	financeSvc := financesvc.NewService(store, baseLogger.Named("svc.finance"))
	reportingSvc := reportingsvc.NewService(store, exporter, baseLogger.Named("svc.reporting"))

	var notifier notify.Notifier
	if cfg.Alerts.Enabled() {
		notifier = notify.NewWebhookClient(cfg.Alerts.WebhookURL)
		baseLogger.Info("alert webhook enabled")
	} else {
		baseLogger.Warn("alert webhook url missing, stock alerts log only")
	}

	engine := router.New(router.Handlers{
		Tanks:     handlers.NewTankHandler(husbandrySvc, baseLogger.Named("handlers.tanks")),
		Batches:   handlers.NewBatchHandler(husbandrySvc, baseLogger.Named("handlers.batches")),
		Foods:     handlers.NewStockHandler(inventorySvc, models.StockKindFood, baseLogger.Named("handlers.foods")),
		Medicines: handlers.NewStockHandler(inventorySvc, models.StockKindMedicine, baseLogger.Named("handlers.medicines")),
		Feedings:  handlers.NewFeedingHandler(husbandrySvc, baseLogger.Named("handlers.feedings")),
		Health:    handlers.NewHealthLogHandler(husbandrySvc, baseLogger.Named("handlers.health")),
		Harvests:  handlers.NewHarvestHandler(husbandrySvc, baseLogger.Named("handlers.harvests")),
		Finance:   handlers.NewFinanceHandler(financeSvc, baseLogger.Named("handlers.finance")),
		Reports:   handlers.NewReportHandler(reportingSvc, baseLogger.Named("handlers.reports")),
	}, cfg.Server.APIToken, baseLogger.Named("router"))

	sched, err := scheduler.New(*cfg, reportingSvc, inventorySvc, notifier, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
