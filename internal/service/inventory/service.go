// Package inventory manages the food and medicine stock ledgers: item
// intake, corrections, reserve/release movements and low-stock queries.
package inventory

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/thuanlv/eelfarm/internal/domain/models"
	"github.com/thuanlv/eelfarm/pkg/keylock"
)

// Store is the persistence surface the inventory service needs.
type Store interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	InsertStockItem(ctx context.Context, kind string, item *models.StockItem) error
	GetStockItem(ctx context.Context, kind string, id primitive.ObjectID) (*models.StockItem, error)
	ListStockItems(ctx context.Context, kind string) ([]models.StockItem, error)
	UpdateStockItem(ctx context.Context, kind string, item *models.StockItem) error
	DeleteStockItem(ctx context.Context, kind string, id primitive.ObjectID) error
	ListLowStock(ctx context.Context, kind string, threshold float64) ([]models.StockItem, error)
	ListExpiring(ctx context.Context, kind string, deadline time.Time) ([]models.StockItem, error)
}

// Service implements stock item management on top of the store.
type Service struct {
	store  Store
	locks  *keylock.KeyLock
	logger *zap.Logger
}

// NewService wires an inventory service instance. The lock table must be the
// one shared with the husbandry service.
func NewService(store Store, locks *keylock.KeyLock, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, locks: locks, logger: logger}
}

// CreateItemInput carries the fields accepted at stock intake.
type CreateItemInput struct {
	Name           string
	Unit           string
	QuantityImport float64
	PricePerUnit   float64
	TotalCost      float64
	SupplierName   string
	SupplierPhone  string
	Source         string
	ImportDate     *time.Time
	ExpiryDate     *time.Time
	Notes          string
	FoodType       string
	Protein        float64
	Usage          string
}

func (in CreateItemInput) validate() error {
	switch {
	case in.Name == "":
		return models.NewValidationError("name", "required")
	case in.Unit == "":
		return models.NewValidationError("unit", "required")
	case in.QuantityImport < 0:
		return models.NewValidationError("quantityImport", "must not be negative")
	case in.PricePerUnit < 0:
		return models.NewValidationError("pricePerUnit", "must not be negative")
	}
	return nil
}

// CreateItem registers a new stock item. Current stock starts equal to the
// imported quantity; total cost is derived when the caller leaves it zero.
func (s *Service) CreateItem(ctx context.Context, kind string, in CreateItemInput) (*models.StockItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	importDate := now
	if in.ImportDate != nil {
		importDate = *in.ImportDate
	}
	totalCost := in.TotalCost
	if totalCost == 0 {
		totalCost = in.QuantityImport * in.PricePerUnit
	}

	item := &models.StockItem{
		ID:             primitive.NewObjectID(),
		Name:           in.Name,
		Unit:           in.Unit,
		QuantityImport: in.QuantityImport,
		CurrentStock:   in.QuantityImport,
		PricePerUnit:   in.PricePerUnit,
		TotalCost:      totalCost,
		SupplierName:   in.SupplierName,
		SupplierPhone:  in.SupplierPhone,
		Source:         in.Source,
		ImportDate:     importDate,
		ExpiryDate:     in.ExpiryDate,
		Notes:          in.Notes,
		FoodType:       in.FoodType,
		Protein:        in.Protein,
		Usage:          in.Usage,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.store.InsertStockItem(ctx, kind, item); err != nil {
		return nil, err
	}

	s.logger.Info("stock item created",
		zap.String("kind", kind),
		zap.String("id", item.ID.Hex()),
		zap.Float64("quantity", item.QuantityImport))
	return item, nil
}

// GetItem fetches one stock item.
func (s *Service) GetItem(ctx context.Context, kind string, id primitive.ObjectID) (*models.StockItem, error) {
	return s.store.GetStockItem(ctx, kind, id)
}

// ListItems lists all stock items of a kind, newest intake first.
func (s *Service) ListItems(ctx context.Context, kind string) ([]models.StockItem, error) {
	return s.store.ListStockItems(ctx, kind)
}

// UpdateItem applies an inventory correction. Changing the imported quantity
// resets current stock to it; this mirrors the intake-fix workflow and runs
// under the item's mutation scope so it cannot race the ledger.
func (s *Service) UpdateItem(ctx context.Context, kind string, id primitive.ObjectID, in CreateItemInput) (*models.StockItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	release := s.locks.Acquire(models.StockScope(kind, id))
	defer release()

	var item *models.StockItem
	err := s.store.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		item, err = s.store.GetStockItem(ctx, kind, id)
		if err != nil {
			return err
		}

		if in.QuantityImport != item.QuantityImport {
			item.QuantityImport = in.QuantityImport
			item.CurrentStock = in.QuantityImport
		}
		item.Name = in.Name
		item.Unit = in.Unit
		item.PricePerUnit = in.PricePerUnit
		item.TotalCost = in.TotalCost
		if item.TotalCost == 0 {
			item.TotalCost = item.QuantityImport * item.PricePerUnit
		}
		item.SupplierName = in.SupplierName
		item.SupplierPhone = in.SupplierPhone
		item.Source = in.Source
		if in.ImportDate != nil {
			item.ImportDate = *in.ImportDate
		}
		item.ExpiryDate = in.ExpiryDate
		item.Notes = in.Notes
		item.FoodType = in.FoodType
		item.Protein = in.Protein
		item.Usage = in.Usage
		item.UpdatedAt = time.Now()

		return s.store.UpdateStockItem(ctx, kind, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes a stock item from the ledger.
func (s *Service) DeleteItem(ctx context.Context, kind string, id primitive.ObjectID) error {
	release := s.locks.Acquire(models.StockScope(kind, id))
	defer release()

	return s.store.DeleteStockItem(ctx, kind, id)
}

// Reserve consumes amount from an item's stock as a standalone correction.
func (s *Service) Reserve(ctx context.Context, kind string, id primitive.ObjectID, amount float64) (*models.StockItem, error) {
	return s.move(ctx, kind, id, amount, (*models.StockItem).Reserve)
}

// Release restores amount to an item's stock as a standalone correction.
func (s *Service) Release(ctx context.Context, kind string, id primitive.ObjectID, amount float64) (*models.StockItem, error) {
	return s.move(ctx, kind, id, amount, (*models.StockItem).Release)
}

func (s *Service) move(ctx context.Context, kind string, id primitive.ObjectID, amount float64, apply func(*models.StockItem, float64) error) (*models.StockItem, error) {
	release := s.locks.Acquire(models.StockScope(kind, id))
	defer release()

	var item *models.StockItem
	err := s.store.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		item, err = s.store.GetStockItem(ctx, kind, id)
		if err != nil {
			return err
		}
		if err := apply(item, amount); err != nil {
			return err
		}
		item.UpdatedAt = time.Now()
		return s.store.UpdateStockItem(ctx, kind, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ListLowStock returns items of a kind running low.
func (s *Service) ListLowStock(ctx context.Context, kind string, threshold float64) ([]models.StockItem, error) {
	return s.store.ListLowStock(ctx, kind, threshold)
}

// ListExpiring returns items of a kind expiring within the window.
func (s *Service) ListExpiring(ctx context.Context, kind string, within time.Duration) ([]models.StockItem, error) {
	return s.store.ListExpiring(ctx, kind, time.Now().Add(within))
}
