// Package sheets exports daily farm reports to a Google spreadsheet. The
// export is optional at runtime; the service degrades to Mongo-only reports
// when no credentials are configured.
package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/thuanlv/eelfarm/internal/config"
	"github.com/thuanlv/eelfarm/internal/domain/models"
)

// Exporter appends report rows to an external spreadsheet.
type Exporter interface {
	AppendDailyReport(ctx context.Context, report *models.DailyReport) error
}

// reportRange is where daily report rows accumulate in the spreadsheet.
const reportRange = "DailyReports!A:H"

// GoogleSheetExporter implements Exporter using the official Sheets API.
type GoogleSheetExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetExporter builds a Sheets-backed exporter.
func NewGoogleSheetExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetExporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetExporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendDailyReport appends one report as a row of the report range.
func (e *GoogleSheetExporter) AppendDailyReport(ctx context.Context, report *models.DailyReport) error {
	values := []interface{}{
		report.Date.Format("2006-01-02"),
		report.FeedCost,
		report.MedicineAmount,
		report.HarvestRevenue,
		report.HarvestedWeight,
		report.OtherIncome,
		report.Expenses,
		report.Net,
	}
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, reportRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append report row into range %s: %w", reportRange, err)
	}

	e.logger.Debug("report row appended to sheet", zap.Time("date", report.Date))
	return nil
}
