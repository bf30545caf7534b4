package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/thuanlv/eelfarm/internal/service/husbandry"
)

// HealthLogHandler serves health log operations.
type HealthLogHandler struct {
	svc    *husbandry.Service
	logger *zap.Logger
}

// NewHealthLogHandler constructs the health log HTTP adapter.
func NewHealthLogHandler(svc *husbandry.Service, logger *zap.Logger) *HealthLogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthLogHandler{svc: svc, logger: logger}
}

type createHealthLogRequest struct {
	TankID         string     `json:"tankId" binding:"required"`
	Disease        string     `json:"disease"`
	MedicineID     string     `json:"medicineId"`
	MedicineAmount float64    `json:"medicineAmount"`
	SurvivalRate   float64    `json:"survivalRate"`
	Notes          string     `json:"notes"`
	RecordedAt     *time.Time `json:"recordedAt"`
}

func (h *HealthLogHandler) Create(c *gin.Context) {
	var req createHealthLogRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.logger, err)
		return
	}

	tankID, err := parseID("tankId", req.TankID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	medicineID, err := parseOptionalID("medicineId", req.MedicineID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	log, err := h.svc.CreateHealthLog(c.Request.Context(), husbandry.CreateHealthLogInput{
		TankID:         tankID,
		Disease:        req.Disease,
		MedicineID:     medicineID,
		MedicineAmount: req.MedicineAmount,
		SurvivalRate:   req.SurvivalRate,
		Notes:          req.Notes,
		RecordedAt:     req.RecordedAt,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, log)
}

func (h *HealthLogHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	log, err := h.svc.GetHealthLog(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

func (h *HealthLogHandler) List(c *gin.Context) {
	logs, err := h.svc.ListHealthLogs(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

type updateHealthLogRequest struct {
	Disease      string  `json:"disease"`
	SurvivalRate float64 `json:"survivalRate"`
	Notes        string  `json:"notes"`
}

func (h *HealthLogHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	var req updateHealthLogRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.logger, err)
		return
	}

	log, err := h.svc.UpdateHealthLog(c.Request.Context(), id, husbandry.UpdateHealthLogInput{
		Disease:      req.Disease,
		SurvivalRate: req.SurvivalRate,
		Notes:        req.Notes,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

func (h *HealthLogHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	if err := h.svc.DeleteHealthLog(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
