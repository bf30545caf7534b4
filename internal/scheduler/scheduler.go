// Package scheduler runs the recurring farm jobs: the nightly report and the
// morning stock sweep.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/thuanlv/eelfarm/internal/config"
	"github.com/thuanlv/eelfarm/internal/domain/models"
	"github.com/thuanlv/eelfarm/internal/service/inventory"
	"github.com/thuanlv/eelfarm/internal/service/reporting"
	"github.com/thuanlv/eelfarm/pkg/clients/notify"
)

// Scheduler manages the cron jobs.
type Scheduler struct {
	cron         *cron.Cron
	reportingSvc *reporting.Service
	inventorySvc *inventory.Service
	notifier     notify.Notifier
	cfg          config.Config
	logger       *zap.Logger
}

// New creates a scheduler in the configured timezone. A nil notifier disables
// the alert sweep delivery; the sweep still logs its findings.
func New(cfg config.Config, reportingSvc *reporting.Service, inventorySvc *inventory.Service, notifier notify.Notifier, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %s: %w", cfg.Reporting.Timezone, err)
	}

	return &Scheduler{
		cron:         cron.New(cron.WithLocation(location)),
		reportingSvc: reportingSvc,
		inventorySvc: inventorySvc,
		notifier:     notifier,
		cfg:          cfg,
		logger:       logger,
	}, nil
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler",
		zap.String("report", s.cfg.Reporting.CronSchedule),
		zap.String("alerts", s.cfg.Alerts.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.Reporting.CronSchedule, s.runDailyReport); err != nil {
		s.logger.Error("failed to schedule daily report", zap.Error(err))
	}
	if _, err := s.cron.AddFunc(s.cfg.Alerts.CronSchedule, s.runStockSweep); err != nil {
		s.logger.Error("failed to schedule stock sweep", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the cron loop and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runDailyReport() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if _, err := s.reportingSvc.GenerateDailyReport(ctx, time.Now()); err != nil {
		s.logger.Error("failed to generate daily report", zap.Error(err))
	}
}

// runStockSweep finds low-stock and soon-expiring items across both
// inventories and posts one alert per finding.
func (s *Scheduler) runStockSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	window := time.Duration(s.cfg.Alerts.ExpiryWindowDays) * 24 * time.Hour

	for _, kind := range []string{models.StockKindFood, models.StockKindMedicine} {
		low, err := s.inventorySvc.ListLowStock(ctx, kind, s.cfg.Alerts.LowStockThreshold)
		if err != nil {
			s.logger.Error("low stock sweep failed", zap.String("kind", kind), zap.Error(err))
			continue
		}
		for _, item := range low {
			s.deliver(ctx, notify.Alert{
				Kind:     notify.KindLowStock,
				ItemKind: kind,
				ItemID:   item.ID.Hex(),
				ItemName: item.Name,
				Message:  fmt.Sprintf("%s còn %.2f %s", item.Name, item.CurrentStock, item.Unit),
			})
		}

		expiring, err := s.inventorySvc.ListExpiring(ctx, kind, window)
		if err != nil {
			s.logger.Error("expiry sweep failed", zap.String("kind", kind), zap.Error(err))
			continue
		}
		for _, item := range expiring {
			s.deliver(ctx, notify.Alert{
				Kind:     notify.KindExpiry,
				ItemKind: kind,
				ItemID:   item.ID.Hex(),
				ItemName: item.Name,
				Message:  fmt.Sprintf("%s hết hạn ngày %s", item.Name, item.ExpiryDate.Format("02/01/2006")),
			})
		}
	}
}

func (s *Scheduler) deliver(ctx context.Context, alert notify.Alert) {
	s.logger.Warn("stock alert",
		zap.String("kind", alert.Kind),
		zap.String("item", alert.ItemName),
		zap.String("message", alert.Message))

	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendAlert(ctx, alert); err != nil {
		s.logger.Error("failed to deliver alert", zap.Error(err), zap.String("item", alert.ItemID))
	}
}
