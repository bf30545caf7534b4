package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/thuanlv/eelfarm/internal/service/husbandry"
)

// TankHandler serves tank CRUD and per-tank history listings.
type TankHandler struct {
	svc    *husbandry.Service
	logger *zap.Logger
}

// NewTankHandler constructs the tank HTTP adapter.
func NewTankHandler(svc *husbandry.Service, logger *zap.Logger) *TankHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TankHandler{svc: svc, logger: logger}
}

type tankRequest struct {
	Name     string  `json:"name" binding:"required"`
	Size     float64 `json:"size" binding:"required"`
	Location string  `json:"location"`
}

func (h *TankHandler) Create(c *gin.Context) {
	var req tankRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.logger, err)
		return
	}

	tank, err := h.svc.CreateTank(c.Request.Context(), husbandry.CreateTankInput{
		Name:     req.Name,
		Size:     req.Size,
		Location: req.Location,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, tank)
}

func (h *TankHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	tank, err := h.svc.GetTank(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, tank)
}

func (h *TankHandler) List(c *gin.Context) {
	tanks, err := h.svc.ListTanks(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, tanks)
}

func (h *TankHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	var req tankRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.logger, err)
		return
	}

	tank, err := h.svc.UpdateTank(c.Request.Context(), id, husbandry.CreateTankInput{
		Name:     req.Name,
		Size:     req.Size,
		Location: req.Location,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, tank)
}

func (h *TankHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	if err := h.svc.DeleteTank(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// FeedingHistory lists a tank's feeding logs.
func (h *TankHandler) FeedingHistory(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	logs, err := h.svc.ListFeedingLogsByTank(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// HealthHistory lists a tank's health logs.
func (h *TankHandler) HealthHistory(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	logs, err := h.svc.ListHealthLogsByTank(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// HarvestHistory lists a tank's harvests.
func (h *TankHandler) HarvestHistory(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	harvests, err := h.svc.ListHarvestsByTank(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, harvests)
}
