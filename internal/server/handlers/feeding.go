package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/thuanlv/eelfarm/internal/service/husbandry"
)

// FeedingHandler serves feeding log operations.
type FeedingHandler struct {
	svc    *husbandry.Service
	logger *zap.Logger
}

// NewFeedingHandler constructs the feeding log HTTP adapter.
func NewFeedingHandler(svc *husbandry.Service, logger *zap.Logger) *FeedingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedingHandler{svc: svc, logger: logger}
}

type createFeedingRequest struct {
	TankID      string     `json:"tankId" binding:"required"`
	FoodID      string     `json:"foodId" binding:"required"`
	Quantity    float64    `json:"quantity" binding:"required"`
	FeedingTime *time.Time `json:"feedingTime"`
	Notes       string     `json:"notes"`
}

func (h *FeedingHandler) Create(c *gin.Context) {
	var req createFeedingRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.logger, err)
		return
	}

	tankID, err := parseID("tankId", req.TankID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	foodID, err := parseID("foodId", req.FoodID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	log, err := h.svc.CreateFeedingLog(c.Request.Context(), husbandry.CreateFeedingLogInput{
		TankID:      tankID,
		FoodID:      foodID,
		Quantity:    req.Quantity,
		FeedingTime: req.FeedingTime,
		Notes:       req.Notes,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, log)
}

func (h *FeedingHandler) List(c *gin.Context) {
	logs, err := h.svc.ListFeedingLogs(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (h *FeedingHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	if err := h.svc.DeleteFeedingLog(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
