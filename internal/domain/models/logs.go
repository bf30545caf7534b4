package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedingLog records one feeding event. EstimatedCost is frozen at creation
// (quantity times the food's price per unit at that moment) and is never
// recomputed from later price changes.
type FeedingLog struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TankID        primitive.ObjectID `bson:"tankId" json:"tankId"`
	FoodID        primitive.ObjectID `bson:"foodId" json:"foodId"`
	Quantity      float64            `bson:"quantity" json:"quantity"`
	EstimatedCost float64            `bson:"estimatedCost" json:"estimatedCost"`
	FeedingTime   time.Time          `bson:"feedingTime" json:"feedingTime"`
	Notes         string             `bson:"notes,omitempty" json:"notes"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// HealthLog records a health observation or treatment. Medicine is optional;
// when present with a positive amount, creating the log consumed that amount
// from the medicine's stock.
type HealthLog struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	TankID         primitive.ObjectID  `bson:"tankId" json:"tankId"`
	Disease        string              `bson:"disease,omitempty" json:"disease"`
	MedicineID     *primitive.ObjectID `bson:"medicine" json:"medicineId"`
	MedicineAmount float64             `bson:"medicineAmount" json:"medicineAmount"`
	SurvivalRate   float64             `bson:"survivalRate,omitempty" json:"survivalRate"`
	Notes          string              `bson:"notes,omitempty" json:"notes"`
	RecordedAt     time.Time           `bson:"recordedAt" json:"recordedAt"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
}

// UsedMedicine reports whether creating this log consumed medicine stock.
func (h *HealthLog) UsedMedicine() bool {
	return h.MedicineID != nil && h.MedicineAmount > 0
}
