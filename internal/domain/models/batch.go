package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SeedBatch records the animals stocked into a tank at one time. Exactly one
// open batch exists per raising tank, enforced through Tank.CurrentBatchID.
type SeedBatch struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Quantity     int                `bson:"quantity" json:"quantity"`
	SizeGrade    float64            `bson:"sizeGrade" json:"sizeGrade"`
	PricePerUnit float64            `bson:"pricePerUnit" json:"pricePerUnit"`
	TotalCost    float64            `bson:"totalCost" json:"totalCost"`
	Source       string             `bson:"source,omitempty" json:"source"`
	TankID       primitive.ObjectID `bson:"tankId" json:"tankId"`
	ImportDate   time.Time          `bson:"importDate" json:"importDate"`
	Notes        string             `bson:"notes,omitempty" json:"notes"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
