package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tank statuses. A tank is either waiting for a batch or raising one.
const (
	TankStatusEmpty   = "empty"
	TankStatusRaising = "raising"
)

// Tank is a physical rearing unit and the aggregate root for raising state.
//
// The status field is kept consistent with the batch reference at all times:
// empty means no current batch and zeroed quantities, raising means exactly
// one open batch is attached.
type Tank struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name            string              `bson:"name" json:"name"`
	Size            float64             `bson:"size" json:"size"`
	Location        string              `bson:"location,omitempty" json:"location"`
	Status          string              `bson:"status" json:"status"`
	CurrentBatchID  *primitive.ObjectID `bson:"currentBatchId" json:"currentBatchId"`
	CurrentQuantity int                 `bson:"currentQuantity" json:"currentQuantity"`
	StartQuantity   int                 `bson:"startQuantity" json:"startQuantity"`
	StartDate       *time.Time          `bson:"startDate,omitempty" json:"startDate"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// NewTank creates an empty tank ready for stocking.
func NewTank(name string, size float64, location string) *Tank {
	now := time.Now()
	return &Tank{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Size:      size,
		Location:  location,
		Status:    TankStatusEmpty,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ApplyStocking moves an empty tank to raising with the given batch.
// Stocking into a tank that is already raising is rejected.
func (t *Tank) ApplyStocking(batchID primitive.ObjectID, quantity int, date time.Time) error {
	if t.Status == TankStatusRaising {
		return &InvalidStateError{
			Entity:   "tank",
			ID:       t.ID.Hex(),
			Current:  TankStatusRaising,
			Required: TankStatusEmpty,
		}
	}

	t.Status = TankStatusRaising
	t.CurrentBatchID = &batchID
	t.CurrentQuantity = quantity
	t.StartQuantity = quantity
	t.StartDate = &date
	return nil
}

// ApplyPartialHarvest removes sold animals from the current population,
// floored at zero. The tank keeps raising.
func (t *Tank) ApplyPartialHarvest(quantitySold int) error {
	if t.Status != TankStatusRaising {
		return &InvalidStateError{
			Entity:   "tank",
			ID:       t.ID.Hex(),
			Current:  t.Status,
			Required: TankStatusRaising,
		}
	}

	t.CurrentQuantity -= quantitySold
	if t.CurrentQuantity < 0 {
		t.CurrentQuantity = 0
	}
	return nil
}

// ApplyFinalHarvest closes out the current batch and resets the tank to
// empty. A second final harvest on the same tank fails.
func (t *Tank) ApplyFinalHarvest() error {
	if t.Status != TankStatusRaising {
		return &InvalidStateError{
			Entity:   "tank",
			ID:       t.ID.Hex(),
			Current:  t.Status,
			Required: TankStatusRaising,
		}
	}

	t.reset()
	return nil
}

// ReleaseBatch resets the tank when its current batch is deleted. The reset
// only happens while the tank still points at that batch; a tank restocked
// with a newer batch is left untouched. Reports whether the tank changed.
func (t *Tank) ReleaseBatch(batchID primitive.ObjectID) bool {
	if t.CurrentBatchID == nil || *t.CurrentBatchID != batchID {
		return false
	}

	t.reset()
	return true
}

// RestorePartialHarvest undoes a partial harvest while the tank still raises
// the same population. Callers must verify the tank has not moved on.
func (t *Tank) RestorePartialHarvest(quantitySold int) {
	t.CurrentQuantity += quantitySold
}

func (t *Tank) reset() {
	t.Status = TankStatusEmpty
	t.CurrentBatchID = nil
	t.CurrentQuantity = 0
	t.StartQuantity = 0
	t.StartDate = nil
}
