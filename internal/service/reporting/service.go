// Package reporting aggregates one day of farm activity into a report
// document and optionally exports it to Google Sheets.
package reporting

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/thuanlv/eelfarm/internal/domain/models"
	"github.com/thuanlv/eelfarm/internal/repository/sheets"
)

// Store is the read surface the report generator needs.
type Store interface {
	ListFeedingLogsBetween(ctx context.Context, from, to time.Time) ([]models.FeedingLog, error)
	ListHealthLogsBetween(ctx context.Context, from, to time.Time) ([]models.HealthLog, error)
	ListHarvestsBetween(ctx context.Context, from, to time.Time) ([]models.Harvest, error)
	ListIncomeLogsBetween(ctx context.Context, from, to time.Time) ([]models.IncomeLog, error)
	ListExpensesBetween(ctx context.Context, from, to time.Time) ([]models.OperationalExpense, error)
	SaveDailyReport(ctx context.Context, report *models.DailyReport) error
}

// Service generates and persists daily reports.
type Service struct {
	store    Store
	exporter sheets.Exporter
	logger   *zap.Logger
}

// NewService wires a reporting service. A nil exporter disables the
// spreadsheet export.
func NewService(store Store, exporter sheets.Exporter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, exporter: exporter, logger: logger}
}

// GenerateDailyReport sums the day's feeding cost, medicine consumption,
// harvest revenue, other income and expenses, persists the report and appends
// it to the spreadsheet when an exporter is configured. The export is
// best-effort; a Sheets failure never loses the stored report.
func (s *Service) GenerateDailyReport(ctx context.Context, day time.Time) (*models.DailyReport, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.AddDate(0, 0, 1)

	feedings, err := s.store.ListFeedingLogsBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	healths, err := s.store.ListHealthLogsBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	harvests, err := s.store.ListHarvestsBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	incomes, err := s.store.ListIncomeLogsBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	expenses, err := s.store.ListExpensesBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	report := &models.DailyReport{
		Date:        from,
		GeneratedAt: time.Now(),
	}
	for _, f := range feedings {
		report.FeedCost += f.EstimatedCost
	}
	for _, h := range healths {
		report.MedicineAmount += h.MedicineAmount
	}
	for _, h := range harvests {
		report.HarvestRevenue += h.TotalRevenue
		report.HarvestedWeight += h.TotalWeight
	}
	for _, i := range incomes {
		report.OtherIncome += i.TotalIncome
	}
	for _, e := range expenses {
		report.Expenses += e.Amount
	}
	report.Net = report.HarvestRevenue + report.OtherIncome - report.FeedCost - report.Expenses

	if err := s.store.SaveDailyReport(ctx, report); err != nil {
		return nil, err
	}

	if s.exporter != nil {
		if err := s.exporter.AppendDailyReport(ctx, report); err != nil {
			s.logger.Error("sheet export failed", zap.Error(err), zap.Time("date", report.Date))
		}
	}

	s.logger.Info("daily report generated",
		zap.Time("date", report.Date),
		zap.Float64("net", report.Net))
	return report, nil
}
