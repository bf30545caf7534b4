package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/thuanlv/eelfarm/internal/domain/models"
	"github.com/thuanlv/eelfarm/internal/service/inventory"
)

// StockHandler serves one inventory kind. The router mounts two instances,
// one for foods and one for medicines.
type StockHandler struct {
	svc    *inventory.Service
	kind   string
	logger *zap.Logger
}

// NewStockHandler constructs the inventory HTTP adapter for a stock kind.
func NewStockHandler(svc *inventory.Service, kind string, logger *zap.Logger) *StockHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockHandler{svc: svc, kind: kind, logger: logger}
}

type stockItemRequest struct {
	Name           string     `json:"name" binding:"required"`
	Unit           string     `json:"unit" binding:"required"`
	QuantityImport float64    `json:"quantityImport"`
	PricePerUnit   float64    `json:"pricePerUnit"`
	TotalCost      float64    `json:"totalCost"`
	SupplierName   string     `json:"supplierName"`
	SupplierPhone  string     `json:"supplierPhone"`
	Source         string     `json:"source"`
	ImportDate     *time.Time `json:"importDate"`
	ExpiryDate     *time.Time `json:"expiryDate"`
	Notes          string     `json:"notes"`
	FoodType       string     `json:"type"`
	Protein        float64    `json:"protein"`
	Usage          string     `json:"usage"`
}

func (r stockItemRequest) toInput() inventory.CreateItemInput {
	return inventory.CreateItemInput{
		Name:           r.Name,
		Unit:           r.Unit,
		QuantityImport: r.QuantityImport,
		PricePerUnit:   r.PricePerUnit,
		TotalCost:      r.TotalCost,
		SupplierName:   r.SupplierName,
		SupplierPhone:  r.SupplierPhone,
		Source:         r.Source,
		ImportDate:     r.ImportDate,
		ExpiryDate:     r.ExpiryDate,
		Notes:          r.Notes,
		FoodType:       r.FoodType,
		Protein:        r.Protein,
		Usage:          r.Usage,
	}
}

func (h *StockHandler) Create(c *gin.Context) {
	var req stockItemRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.logger, err)
		return
	}

	item, err := h.svc.CreateItem(c.Request.Context(), h.kind, req.toInput())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *StockHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	item, err := h.svc.GetItem(c.Request.Context(), h.kind, id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *StockHandler) List(c *gin.Context) {
	items, err := h.svc.ListItems(c.Request.Context(), h.kind)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *StockHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	var req stockItemRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.logger, err)
		return
	}

	item, err := h.svc.UpdateItem(c.Request.Context(), h.kind, id, req.toInput())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *StockHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	if err := h.svc.DeleteItem(c.Request.Context(), h.kind, id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type stockMoveRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

// Reserve consumes stock from an item as a manual correction.
func (h *StockHandler) Reserve(c *gin.Context) {
	h.move(c, h.svc.Reserve)
}

// Release restores stock to an item as a manual correction.
func (h *StockHandler) Release(c *gin.Context) {
	h.move(c, h.svc.Release)
}

func (h *StockHandler) move(c *gin.Context, op func(ctx context.Context, kind string, id primitive.ObjectID, amount float64) (*models.StockItem, error)) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	var req stockMoveRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.logger, err)
		return
	}

	item, err := op(c.Request.Context(), h.kind, id, req.Amount)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// LowStock lists items of this kind below the given threshold.
func (h *StockHandler) LowStock(c *gin.Context) {
	threshold, err := strconv.ParseFloat(c.DefaultQuery("threshold", "5"), 64)
	if err != nil {
		writeError(c, h.logger, models.NewValidationError("threshold", "must be numeric"))
		return
	}

	items, err := h.svc.ListLowStock(c.Request.Context(), h.kind, threshold)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Expiring lists items of this kind expiring within the given number of days.
func (h *StockHandler) Expiring(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days < 0 {
		writeError(c, h.logger, models.NewValidationError("days", "must be a non-negative integer"))
		return
	}

	items, err := h.svc.ListExpiring(c.Request.Context(), h.kind, time.Duration(days)*24*time.Hour)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
