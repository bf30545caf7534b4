package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/thuanlv/eelfarm/internal/domain/models"
	"github.com/thuanlv/eelfarm/internal/service/husbandry"
)

// HarvestHandler serves harvest operations.
type HarvestHandler struct {
	svc    *husbandry.Service
	logger *zap.Logger
}

// NewHarvestHandler constructs the harvest HTTP adapter.
func NewHarvestHandler(svc *husbandry.Service, logger *zap.Logger) *HarvestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HarvestHandler{svc: svc, logger: logger}
}

type harvestDetailRequest struct {
	Grade  string  `json:"grade"`
	Weight float64 `json:"weight"`
	Price  float64 `json:"price"`
}

type createHarvestRequest struct {
	TankID         string                 `json:"tankId" binding:"required"`
	BuyerName      string                 `json:"buyerName"`
	BuyerPhone     string                 `json:"buyerPhone"`
	SaleDate       *time.Time             `json:"saleDate"`
	Details        []harvestDetailRequest `json:"details"`
	TotalWeight    float64                `json:"totalWeight"`
	TotalRevenue   float64                `json:"totalRevenue"`
	QuantitySold   int                    `json:"quantitySold"`
	IsFinalHarvest bool                   `json:"isFinalHarvest"`
	Notes          string                 `json:"notes"`
}

func toDetails(in []harvestDetailRequest) []models.HarvestDetail {
	if len(in) == 0 {
		return nil
	}
	out := make([]models.HarvestDetail, len(in))
	for i, d := range in {
		out[i] = models.HarvestDetail{Grade: d.Grade, Weight: d.Weight, Price: d.Price}
	}
	return out
}

func (h *HarvestHandler) Create(c *gin.Context) {
	var req createHarvestRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.logger, err)
		return
	}

	tankID, err := parseID("tankId", req.TankID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	harvest, err := h.svc.CreateHarvest(c.Request.Context(), husbandry.CreateHarvestInput{
		TankID:         tankID,
		BuyerName:      req.BuyerName,
		BuyerPhone:     req.BuyerPhone,
		SaleDate:       req.SaleDate,
		Details:        toDetails(req.Details),
		TotalWeight:    req.TotalWeight,
		TotalRevenue:   req.TotalRevenue,
		QuantitySold:   req.QuantitySold,
		IsFinalHarvest: req.IsFinalHarvest,
		Notes:          req.Notes,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, harvest)
}

func (h *HarvestHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	harvest, err := h.svc.GetHarvest(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, harvest)
}

func (h *HarvestHandler) List(c *gin.Context) {
	harvests, err := h.svc.ListHarvests(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, harvests)
}

type updateHarvestRequest struct {
	BuyerName      string                 `json:"buyerName"`
	BuyerPhone     string                 `json:"buyerPhone"`
	SaleDate       *time.Time             `json:"saleDate"`
	Details        []harvestDetailRequest `json:"details"`
	TotalWeight    float64                `json:"totalWeight"`
	TotalRevenue   float64                `json:"totalRevenue"`
	QuantitySold   int                    `json:"quantitySold"`
	IsFinalHarvest bool                   `json:"isFinalHarvest"`
	Notes          string                 `json:"notes"`
}

func (h *HarvestHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	var req updateHarvestRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.logger, err)
		return
	}

	harvest, err := h.svc.UpdateHarvest(c.Request.Context(), id, husbandry.UpdateHarvestInput{
		BuyerName:      req.BuyerName,
		BuyerPhone:     req.BuyerPhone,
		SaleDate:       req.SaleDate,
		Details:        toDetails(req.Details),
		TotalWeight:    req.TotalWeight,
		TotalRevenue:   req.TotalRevenue,
		QuantitySold:   req.QuantitySold,
		IsFinalHarvest: req.IsFinalHarvest,
		Notes:          req.Notes,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, harvest)
}

func (h *HarvestHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	if err := h.svc.DeleteHarvest(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
