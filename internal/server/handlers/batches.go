package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/thuanlv/eelfarm/internal/service/husbandry"
)

// BatchHandler serves seed batch operations.
type BatchHandler struct {
	svc    *husbandry.Service
	logger *zap.Logger
}

// NewBatchHandler constructs the seed batch HTTP adapter.
func NewBatchHandler(svc *husbandry.Service, logger *zap.Logger) *BatchHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchHandler{svc: svc, logger: logger}
}

type createBatchRequest struct {
	TankID       string     `json:"tankId" binding:"required"`
	Name         string     `json:"name" binding:"required"`
	Quantity     int        `json:"quantity" binding:"required"`
	SizeGrade    float64    `json:"sizeGrade"`
	PricePerUnit float64    `json:"pricePerUnit"`
	TotalCost    float64    `json:"totalCost"`
	Source       string     `json:"source"`
	ImportDate   *time.Time `json:"importDate"`
	Notes        string     `json:"notes"`
}

func (h *BatchHandler) Create(c *gin.Context) {
	var req createBatchRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.logger, err)
		return
	}

	tankID, err := parseID("tankId", req.TankID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	batch, err := h.svc.CreateSeedBatch(c.Request.Context(), husbandry.CreateSeedBatchInput{
		TankID:       tankID,
		Name:         req.Name,
		Quantity:     req.Quantity,
		SizeGrade:    req.SizeGrade,
		PricePerUnit: req.PricePerUnit,
		TotalCost:    req.TotalCost,
		Source:       req.Source,
		ImportDate:   req.ImportDate,
		Notes:        req.Notes,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, batch)
}

func (h *BatchHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	batch, err := h.svc.GetSeedBatch(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

func (h *BatchHandler) List(c *gin.Context) {
	batches, err := h.svc.ListSeedBatches(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, batches)
}

type updateBatchRequest struct {
	Name         string  `json:"name" binding:"required"`
	SizeGrade    float64 `json:"sizeGrade"`
	PricePerUnit float64 `json:"pricePerUnit"`
	TotalCost    float64 `json:"totalCost"`
	Source       string  `json:"source"`
	Notes        string  `json:"notes"`
}

func (h *BatchHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	var req updateBatchRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.logger, err)
		return
	}

	batch, err := h.svc.UpdateSeedBatch(c.Request.Context(), id, husbandry.UpdateSeedBatchInput{
		Name:         req.Name,
		SizeGrade:    req.SizeGrade,
		PricePerUnit: req.PricePerUnit,
		TotalCost:    req.TotalCost,
		Source:       req.Source,
		Notes:        req.Notes,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

func (h *BatchHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	if err := h.svc.DeleteSeedBatch(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
