package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stock item kinds. Foods and medicines live in separate collections but
// share the same ledger behavior.
const (
	StockKindFood     = "food"
	StockKindMedicine = "medicine"
)

// StockItem is an inventory-tracked consumable. QuantityImport is the
// historical amount received and never changes after creation except through
// an explicit inventory correction; CurrentStock moves with consumption.
type StockItem struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Unit           string             `bson:"unit" json:"unit"`
	QuantityImport float64            `bson:"quantityImport" json:"quantityImport"`
	CurrentStock   float64            `bson:"currentStock" json:"currentStock"`
	PricePerUnit   float64            `bson:"pricePerUnit" json:"pricePerUnit"`
	TotalCost      float64            `bson:"totalCost" json:"totalCost"`
	SupplierName   string             `bson:"supplierName,omitempty" json:"supplierName"`
	SupplierPhone  string             `bson:"supplierPhone,omitempty" json:"supplierPhone"`
	Source         string             `bson:"source,omitempty" json:"source"`
	ImportDate     time.Time          `bson:"importDate" json:"importDate"`
	ExpiryDate     *time.Time         `bson:"expiryDate,omitempty" json:"expiryDate"`
	Notes          string             `bson:"notes,omitempty" json:"notes"`

	// Food only.
	FoodType string  `bson:"type,omitempty" json:"type,omitempty"`
	Protein  float64 `bson:"protein,omitempty" json:"protein,omitempty"`

	// Medicine only.
	Usage string `bson:"usage,omitempty" json:"usage,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Reserve decrements current stock by amount. The check and the decrement
// form one step on the loaded document; callers persist under the item's
// mutation scope so concurrent reserves cannot race past the check.
func (s *StockItem) Reserve(amount float64) error {
	if amount <= 0 {
		return NewValidationError("amount", "must be greater than zero")
	}
	if s.CurrentStock < amount {
		return &InsufficientStockError{
			ItemID:    s.ID.Hex(),
			Available: s.CurrentStock,
			Requested: amount,
		}
	}

	s.CurrentStock -= amount
	return nil
}

// Release returns amount to current stock, reversing a consumption event.
// No upper bound is enforced against QuantityImport; corrections past the
// imported quantity are deliberately allowed.
func (s *StockItem) Release(amount float64) error {
	if amount <= 0 {
		return NewValidationError("amount", "must be greater than zero")
	}

	s.CurrentStock += amount
	return nil
}

// Expired reports whether the item is past its expiry date at the given time.
func (s *StockItem) Expired(at time.Time) bool {
	return s.ExpiryDate != nil && at.After(*s.ExpiryDate)
}
