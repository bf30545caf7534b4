package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/thuanlv/eelfarm/internal/domain/models"
	"github.com/thuanlv/eelfarm/internal/service/reporting"
)

// ReportHandler triggers report generation on demand, outside the nightly
// schedule.
type ReportHandler struct {
	svc    *reporting.Service
	logger *zap.Logger
}

// NewReportHandler constructs the report HTTP adapter.
func NewReportHandler(svc *reporting.Service, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, logger: logger}
}

// GenerateDaily builds the report for the date in the query (YYYY-MM-DD),
// defaulting to today.
func (h *ReportHandler) GenerateDaily(c *gin.Context) {
	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			writeError(c, h.logger, models.NewValidationError("date", "must be YYYY-MM-DD"))
			return
		}
		day = parsed
	}

	report, err := h.svc.GenerateDailyReport(c.Request.Context(), day)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
